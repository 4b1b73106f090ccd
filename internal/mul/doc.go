// Package mul implements multiplication and squaring of limb buffers.
//
// A Selector picks, per call and per recursion level, one algorithm from the
// cascade Basecase → Toom-2 → Toom-3 → Toom-4 → Toom-6 → Toom-8 → Transform
// by comparing operand lengths with a threshold table. Every algorithm
// recurses back through the Selector for its sub-products, so the
// thresholds decide performance only: any table that passes
// config.Thresholds.Validate yields the same products.
//
// Top-level calls (Mul, Sqr, MulModBnm1, ...) size one arena with the
// closed-form scratch functions (MulScratch, SqrScratch) and thread it down
// the recursion. The *Into methods take the arena explicitly and are what
// other kernel packages call from inside their own recursions.
package mul
