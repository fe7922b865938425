package lumen

import (
	"fmt"
	"reflect"
	"runtime"
	"slices"
)

type systemFn any

// Module bundles resources and systems. Install runs once, in UseModules order, the
// first time the app is stepped.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	modules   []Module
	installed bool
	stages    []Stage
	systems   map[string][]systemFn
	shutdown  []systemFn
	resources map[reflect.Type]any
	exiting   bool
}

func NewApp() *App {
	app := &App{
		stages:    slices.Clone(defaultStages),
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range app.stages {
		app.initStage(stage)
	}
	return app
}

func (app *App) UseModules(modules ...Module) *App {
	app.modules = append(app.modules, modules...)
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

func (app *App) build() {
	if app.installed {
		return
	}
	app.installed = true

	cmd := app.Commands()
	for _, module := range app.modules {
		module.Install(app, cmd)
	}
}

// Run steps frames until a system asks to exit, then runs the shutdown systems.
func (app *App) Run() {
	app.build()
	app.Logger().Infof("running with %d modules", len(app.modules))

	for !app.exiting {
		app.Step()
	}
	app.Shutdown()
}

// Step runs every stage once.
func (app *App) Step() {
	app.build()
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
}

// Shutdown runs the shutdown systems in reverse registration order. It is safe to
// call more than once; later calls do nothing.
func (app *App) Shutdown() {
	for i := len(app.shutdown) - 1; i >= 0; i-- {
		app.callSystem(app.shutdown[i])
	}
	app.shutdown = nil
}

func (app *App) Exiting() bool { return app.exiting }

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type T, if one was added.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(app.dependencyError(systemValue, argType))
		}

		underlyingType := argType.Elem()
		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(app.Commands())
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			panic(app.dependencyError(systemValue, argType))
		}
	}
	systemValue.Call(args)
}

func (app *App) dependencyError(system reflect.Value, dependency reflect.Type) string {
	return fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(system.Pointer()).Name(),
		system.Type(),
		dependency,
	)
}
