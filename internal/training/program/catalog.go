package program

import (
	"errors"
	"fmt"
)

var ErrUnknownModule = errors.New("unknown module")

type ModuleDefinition struct {
	Module    Module
	Exercises []Exercise
}

// Catalog holds the generated 12 week programs of all modules. Programs are
// generated once, when the catalog is created, and must be treated as read-only.
type Catalog struct {
	modules   []Module
	base      map[string][]Exercise
	programs  map[string][]WorkoutWeek
	defaultID string
}

func NewCatalog(defaultID string, definitions ...ModuleDefinition) (*Catalog, error) {
	c := &Catalog{
		base:      make(map[string][]Exercise, len(definitions)),
		programs:  make(map[string][]WorkoutWeek, len(definitions)),
		defaultID: defaultID,
	}

	for _, def := range definitions {
		moduleID := def.Module.ID
		if moduleID == "" {
			return nil, errors.New("module id empty")
		}
		if _, ok := c.base[moduleID]; ok {
			return nil, fmt.Errorf("duplicate module: %s", moduleID)
		}
		if len(def.Exercises) == 0 {
			return nil, fmt.Errorf("module %s has no exercises", moduleID)
		}

		c.modules = append(c.modules, def.Module)
		c.base[moduleID] = def.Exercises
		c.programs[moduleID] = GenerateProgram(def.Exercises)
	}

	if _, ok := c.programs[defaultID]; !ok {
		return nil, fmt.Errorf("default module %s not defined", defaultID)
	}

	return c, nil
}

// DefaultCatalog returns the compiled-in catalog of the three training modules.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		DefaultModuleID,
		ModuleDefinition{Module: modules[0], Exercises: jumpExercises},
		ModuleDefinition{Module: modules[1], Exercises: stretchingExercises},
		ModuleDefinition{Module: modules[2], Exercises: strengthExercises},
	)
	if err != nil {
		// static data, can only happen if someone breaks data.go
		panic(err)
	}
	return c
}

func (c *Catalog) Modules() []Module {
	return append([]Module(nil), c.modules...)
}

func (c *Catalog) ModuleIDs() []string {
	ids := make([]string, 0, len(c.modules))
	for _, m := range c.modules {
		ids = append(ids, m.ID)
	}
	return ids
}

func (c *Catalog) DefaultModuleID() string {
	return c.defaultID
}

func (c *Catalog) IsKnownModule(moduleID string) bool {
	_, ok := c.programs[moduleID]
	return ok
}

// Module returns the module metadata, falling back to the default module.
func (c *Catalog) Module(moduleID string) Module {
	if !c.IsKnownModule(moduleID) {
		moduleID = c.defaultID
	}
	for _, m := range c.modules {
		if m.ID == moduleID {
			return m
		}
	}
	return Module{}
}

// Program returns the 12 week program of the module. An unknown module id
// is not an error: the program of the default module is returned instead.
func (c *Catalog) Program(moduleID string) []WorkoutWeek {
	if weeks, ok := c.programs[moduleID]; ok {
		return weeks
	}
	return c.programs[c.defaultID]
}

// Week returns a single week of the module program (same fallback as Program).
func (c *Catalog) Week(moduleID string, weekNumber int) (WorkoutWeek, error) {
	if weekNumber < 1 || weekNumber > ProgramWeeks {
		return WorkoutWeek{}, fmt.Errorf("%w: %d", ErrWeekOutOfRange, weekNumber)
	}
	return c.Program(moduleID)[weekNumber-1], nil
}

// Exercise looks up a base exercise of a module. Unlike Program, there is no
// fallback here: logging against a wrong module must not silently succeed.
func (c *Catalog) Exercise(moduleID, exerciseID string) (Exercise, error) {
	exercises, ok := c.base[moduleID]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrUnknownModule, moduleID)
	}
	for _, ex := range exercises {
		if ex.ID == exerciseID {
			return ex, nil
		}
	}
	return Exercise{}, fmt.Errorf("%w: %s/%s", ErrExerciseNotFound, moduleID, exerciseID)
}

// Exercises returns the base exercises of a known module, keyed by id.
func (c *Catalog) Exercises(moduleID string) map[string]Exercise {
	exercises := c.base[moduleID]
	byID := make(map[string]Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}
	return byID
}
