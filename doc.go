// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package robdd implements a concurrent Reduced Ordered Binary Decision
Diagram (ROBDD) engine: a data structure used to efficiently represent
Boolean functions over a fixed set of variables, shared and canonicalized
across every goroutine using the same Base.

Basics

A Base is created with New, fixing its number of real input variables
(Varnum). Every Boolean function built from those variables, or from the
virtual placeholder variables of an AST (see ast.go), is denoted by a NID:
a packed 64-bit node identifier, never a pointer, that fully determines the
function it stands for up to its own INV bit. Two NID denote the same
function if and only if they are equal; O and I are the fixed identifiers
for the constant functions false and true.

Concurrency

Unlike a classical single-threaded BDD package, a Base distributes ITE
computation across a Swarm of worker goroutines coordinated through a
work-in-progress registry (WorkState): a single call to Ite may fan out
into many concurrent sub-queries, all converging on the same shared unique
table and computed cache, so that two goroutines racing to build the same
sub-function always end up sharing one canonical NID rather than building
it twice.

Substitution solving

The AST and Solver types implement a second layer above the core ITE
engine: build up a Boolean expression as a DAG of virtual variables (AST),
then substitute each one into a BDD over only the real input variables, one
variable at a time, following the termination argument that each
substitution strictly shrinks the largest virtual-variable index still
present.

This package is a redesign, for a different specification, of the
single-threaded rudd/BuDDy-style BDD library it was bootstrapped from; see
DESIGN.md for what was kept, adapted, or dropped and why.
*/
package robdd
