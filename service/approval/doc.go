// Package approval implements the human-in-the-loop approval layer. A
// Workflow posts an approval request to a messaging channel, offers approve
// and deny reactions, polls the reaction state until a decision or a hard
// deadline, and always resolves to a Result: faults and timeouts resolve to a
// denial.
package approval
