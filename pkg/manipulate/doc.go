// Package manipulate builds coalition ballots that steer an STV election
// towards a target elimination order.
//
// Given an order c1..cC and a budget of k coalition ballots, [Builder.Build]
// walks the order round by round. Before c_i is eliminated, every candidate
// ranked after c_i must hold at least as many first preferences as c_i;
// where one falls short, free coalition ballots are rewritten to put it
// first until the gap closes. If the budget runs out the order is
// infeasible for k and the attempt is abandoned. On success the coalition
// casts the order reversed (intended winner first) in the original profile.
//
// The builder is a heuristic: a feasible result does not guarantee that
// STV elects the intended winner, only that the coalition followed the plan.
// Callers re-resolve the returned profile to find out.
package manipulate
