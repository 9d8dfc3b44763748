package mock

import "github.com/fwojciec/faleproxy"

var _ faleproxy.Substituter = (*Substituter)(nil)

// Substituter is a mock implementation of faleproxy.Substituter.
type Substituter struct {
	SubstituteFn func(html string) (*faleproxy.SubstituteResult, error)
}

func (s *Substituter) Substitute(html string) (*faleproxy.SubstituteResult, error) {
	return s.SubstituteFn(html)
}
