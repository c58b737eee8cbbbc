// Package aero supplies rotor torque coefficients to the simulation loop.
//
// Two sources implement [Source]:
//
//   - [EvaluatorSource]: delegates to a high-fidelity [Evaluator] such as a
//     blade-element/momentum solver
//   - [SurfaceSource]: bilinear lookup on a precomputed Cq(pitch, TSR)
//     [Surface], clamped at the table edges
//
// [Select] picks one of them once, at setup, and the choice holds for the
// whole run.
package aero
