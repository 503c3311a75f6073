package crashguard

// scope is one armed guard. It is confined to the goroutine that armed it.
type scope struct {
	engine  *Engine
	label   string
	handler DumpHandler
	state   GuardState
}

func (e *Engine) newScope() *scope {
	return &scope{engine: e, state: StateUnarmed}
}

func (s *scope) arm(reg registration) {
	s.label = reg.label
	s.handler = reg.handler
	s.to(StateArmed)
}

func (s *scope) to(next GuardState) {
	prev := s.state

	if !canTransition(prev, next) {
		s.engine.log.Error("illegal guard state transition",
			"label", s.label, "from", prev.String(), "to", next.String())
	}

	s.state = next

	if s.engine.observer != nil {
		s.engine.observer(s.label, prev, next)
	}
}
