package scene

import (
	"fmt"

	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/entity"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/rs/zerolog/log"
)

type modelResult struct {
	spec prefabs.ModelSpec
	err  error
}

// ModelLoad is a model being read on another goroutine. Poll it from the
// frame goroutine.
type ModelLoad struct {
	ref  prefabs.ModelRefSpec
	done chan modelResult
	res  *modelResult
}

// LoadModelAsync starts reading the scene's model. override, when set, is a
// path on disk that replaces the scene's model path. It returns ErrNoModel
// when there is nothing to load.
func LoadModelAsync(spec prefabs.SceneSpec, override string) (*ModelLoad, error) {
	var ref prefabs.ModelRefSpec
	if spec.Model != nil {
		ref = *spec.Model
	}
	if override == "" && ref.Path == "" {
		return nil, ErrNoModel
	}

	l := &ModelLoad{ref: ref, done: make(chan modelResult, 1)}
	go func() {
		l.done <- loadModel(ref.Path, override)
	}()
	return l, nil
}

func loadModel(name, override string) modelResult {
	data, err := prefabs.LoadPath(override, name)
	if err != nil {
		return modelResult{err: fmt.Errorf("scene: load model %s: %w", nameOr(override, name), err)}
	}
	spec, err := prefabs.DecodeSpec[prefabs.ModelSpec](nameOr(override, name), data)
	if err != nil {
		return modelResult{err: err}
	}
	if err := spec.Validate(); err != nil {
		return modelResult{err: fmt.Errorf("scene: %w", err)}
	}
	return modelResult{spec: spec}
}

// Poll reports whether the load finished, with its result.
func (l *ModelLoad) Poll() (prefabs.ModelSpec, bool, error) {
	if l.res == nil {
		select {
		case r := <-l.done:
			l.res = &r
		default:
			return prefabs.ModelSpec{}, false, nil
		}
	}
	return l.res.spec, true, l.res.err
}

// Wait blocks until the load finishes.
func (l *ModelLoad) Wait() (prefabs.ModelSpec, error) {
	if l.res == nil {
		r := <-l.done
		l.res = &r
	}
	return l.res.spec, l.res.err
}

// Ref is where the model is placed.
func (l *ModelLoad) Ref() prefabs.ModelRefSpec { return l.ref }

// MergeModel adds the parts of model to the world as statics placed at ref.
func MergeModel(w *ecs.World, pw *physics.World, model prefabs.ModelSpec, ref prefabs.ModelRefSpec) ([]ecs.Entity, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	var out []ecs.Entity
	for _, part := range model.Parts {
		e, err := entity.NewStatic(w, pw, part, ref.Position, ref.Yaw)
		if err != nil {
			for _, created := range out {
				entity.Destroy(w, pw, created)
			}
			return nil, fmt.Errorf("scene: model %q: %w", model.Name, err)
		}
		out = append(out, e)
	}
	log.Info().Str("model", model.Name).Int("parts", len(out)).Msg("model merged")
	return out, nil
}

// PollModel merges a finished load into s. It reports true once the load is
// settled, whether it succeeded or not. Failures are logged and the scene
// keeps going without the model.
func (s *Scene) PollModel(w *ecs.World, pw *physics.World, l *ModelLoad) bool {
	if l == nil {
		return true
	}
	model, done, err := l.Poll()
	if !done {
		return false
	}
	if err != nil {
		log.Error().Err(err).Msg("model load failed, continuing without it")
		return true
	}
	ents, err := MergeModel(w, pw, model, l.Ref())
	if err != nil {
		log.Error().Err(err).Msg("model merge failed, continuing without it")
		return true
	}
	s.Model = append(s.Model, ents...)
	return true
}
