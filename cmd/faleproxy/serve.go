package main

import (
	fphttp "github.com/fwojciec/faleproxy/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := fphttp.NewServer()
	s.Addr = c.Addr
	s.ProxyService = deps.Proxy
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		return err
	}
	deps.Logger.Info("faleproxy listening",
		"url", s.URL(),
		"term", deps.Rule.Term,
		"replacement", deps.Rule.Replacement,
	)

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return s.Close()
}
