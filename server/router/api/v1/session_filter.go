package v1

import (
	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/store"
)

// newSessionFilterEnv declares the variables a session filter expression may
// reference.
func newSessionFilterEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("subject", cel.StringType),
		cel.Variable("study_type", cel.StringType),
		cel.Variable("completed", cel.BoolType),
		cel.Variable("duration_minutes", cel.IntType),
	)
}

// filterSessions evaluates a CEL expression against each session and keeps
// the ones it accepts. The expression must produce a boolean.
func filterSessions(sessions []*store.StudySession, filter string) ([]*store.StudySession, error) {
	env, err := newSessionFilterEnv()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create filter environment")
	}

	celAST, issues := env.Compile(filter)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(issues.Err(), "invalid filter expression: %s", filter)
	}
	if celAST.OutputType() != cel.BoolType {
		return nil, errors.Errorf("filter must evaluate to a boolean, got %s", celAST.OutputType())
	}

	program, err := env.Program(celAST)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build filter program")
	}

	kept := []*store.StudySession{}
	for _, session := range sessions {
		out, _, err := program.Eval(map[string]any{
			"subject":          session.Subject,
			"study_type":       session.StudyType,
			"completed":        session.Completed,
			"duration_minutes": int64(session.DurationMinutes),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to evaluate filter against session %s", session.UID)
		}
		if keep, ok := out.Value().(bool); ok && keep {
			kept = append(kept, session)
		}
	}
	return kept, nil
}
