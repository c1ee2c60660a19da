package input

// Script проигрывает заранее заданную последовательность наборов, по одному
// на опрос. После конца последовательности отдаёт последний набор, если
// включён Hold, иначе пустой.
type Script struct {
	frames []Set
	pos    int
	Hold   bool
}

// NewScript создаёт сценарий из кадров
func NewScript(frames ...Set) *Script {
	return &Script{frames: frames}
}

// Repeat добавляет набор n раз подряд
func (s *Script) Repeat(set Set, n int) *Script {
	for i := 0; i < n; i++ {
		s.frames = append(s.frames, set)
	}
	return s
}

func (s *Script) Poll() Set {
	if s.pos < len(s.frames) {
		set := s.frames[s.pos]
		s.pos++
		return set
	}
	if s.Hold && len(s.frames) > 0 {
		return s.frames[len(s.frames)-1]
	}
	return 0
}

// Done сообщает, что все кадры проиграны
func (s *Script) Done() bool {
	return s.pos >= len(s.frames)
}

// Autopilot всё время идёт вперёд и нажимает прыжок раз в JumpEvery опросов.
// Прыжок держится один опрос, чтобы каждый раз был новый фронт нажатия.
type Autopilot struct {
	JumpEvery int
	Sprint    bool
	polls     int
}

func (a *Autopilot) Poll() Set {
	a.polls++
	set := Of(MoveForward)
	if a.Sprint {
		set = set.With(Sprint)
	}
	if a.JumpEvery > 0 && a.polls%a.JumpEvery == 0 {
		set = set.With(Jump)
	}
	return set
}
