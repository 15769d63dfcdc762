// Package crossattack estimates the bit cost of two attacks against a
// t-round challenge-response protocol over F_p whose second challenge has
// fixed weight w.
//
// Both attacks guess enough first-phase challenges to win at least ts of the
// t rounds, then try to win the remaining rounds in the second phase. Their
// cost is 1/P(first phase) + 1/P(second phase), minimized over ts:
//
//   - the original model takes the second phase probability from a
//     fixed-weight collision (ProbB);
//   - the revised model additionally maximizes over an auxiliary weight
//     aa in [w, t] (ProbBNew).
//
// # Quick Start
//
//	client := crossattack.NewClient()
//
//	est, err := client.Estimate(crossattack.Params{P: 127, T: 163, W: 85})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("original: %.2f bits at t* = %d\n", est.Original.Bits, est.Original.ThresholdStar)
//
// # Backends
//
// All computations are generic over a numeric.Float backend. Use the generic
// functions directly to pick a backend at compile time:
//
//	res, err := crossattack.EstimateAttack[numeric.Big113](pool, params, crossattack.Options{})
//
// or select one by name through Client.WithBackend.
//
// # Parallelism
//
// Every threshold ts is evaluated as an independent unit on an Executor.
// Results are reduced in ts order with the smallest ts winning exact ties, so
// the outcome does not depend on how many workers ran the search.
package crossattack
