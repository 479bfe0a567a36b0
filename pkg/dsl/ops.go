package dsl

import "github.com/aretw0/turing/pkg/domain"

// R reads read, writes write and moves right.
func R(read, write string) domain.Action {
	return domain.NewAction(read, write, domain.Right)
}

// L reads read, writes write and moves left.
func L(read, write string) domain.Action {
	return domain.NewAction(read, write, domain.Left)
}

// S reads read, writes write and stays.
func S(read, write string) domain.Action {
	return domain.NewAction(read, write, domain.Stay)
}

// RWild skips one cell to the right without changing it.
func RWild(cfg domain.Config) domain.Action {
	return R(cfg.Wildcard, cfg.Wildcard)
}

// LWild skips one cell to the left without changing it.
func LWild(cfg domain.Config) domain.Action {
	return L(cfg.Wildcard, cfg.Wildcard)
}

// SWild leaves the cell and the head untouched.
func SWild(cfg domain.Config) domain.Action {
	return S(cfg.Wildcard, cfg.Wildcard)
}

// Copy reads sym, writes it back and moves in d.
func Copy(sym string, d domain.Direction) domain.Action {
	return domain.NewAction(sym, sym, d)
}
