// Package tags normalizes component tag invocations into render contexts.
//
// A tag invocation carries free-form positional and named arguments. Each
// component kind declares the parameters it recognizes together with their
// defaults; Normalize binds the invocation against that declaration and
// returns a RenderContext with a fixed set of keys, ready to be handed to a
// template renderer.
//
// Three kinds (input_number, input_search and base_input) also derive an
// html_attrs list from the named arguments they do not consume, so callers can
// forward raw attributes such as min, max or step to the rendered input.
package tags
