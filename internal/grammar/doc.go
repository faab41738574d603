// Package grammar is a checker for yacc-style grammars.
//
// The accepted input is a declarations section (%start, %token, %left,
// %right, %nonassoc, %expect, %{ ... %} blocks), a "%%" separator and a
// rules section:
//
//	%start Expr
//	%%
//	Expr : Expr '+' Term | Term ;
//	Term : 'id' ;
//
// Anything after a second "%%" is ignored. Syntax errors stop the tool;
// semantic problems (duplicate rules, undefined symbols, a missing or
// unknown start rule) are reported and checking continues. The result is a
// Certified value that only hands out the lowered Grammar when no error
// was observed.
package grammar
