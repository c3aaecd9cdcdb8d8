// Package workflow coordinates a full generation pass: request validation,
// output locking, theme classification, render-spec construction, capability
// probing, the strategy chain, and result persistence.
package workflow
