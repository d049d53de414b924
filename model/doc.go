// Package model groups the value types shared by the gate: the intercepted
// action request (`action`) and the risk and gate verdicts (`verdict`).
// Types in these packages carry no behaviour beyond simple accessors so that
// every service layer can depend on them without creating import cycles.
package model
