package lumen

import (
	"github.com/gekko3d/lumen/config"
)

type HotReload struct {
	watcher *config.Watcher
	Reloads int
	Failed  int
}

// HotReloadModule rebuilds the scene whenever its file changes on disk. A file that
// fails to load or build is logged and the running scene is kept. It does nothing for
// the built-in scene.
type HotReloadModule struct{}

func (m HotReloadModule) Install(app *App, cmd *Commands) {
	log := app.Logger()
	state, ok := Resource[SceneState](app)
	if !ok || state.Path == "" {
		log.Infof("hot reload: no scene file to watch")
		return
	}

	w, err := config.NewWatcher(state.Path)
	if err != nil {
		log.Warnf("hot reload disabled: %v", err)
		return
	}
	cmd.AddResources(&HotReload{watcher: w})
	log.Infof("hot reload: watching %s", state.Path)

	app.UseSystem(System(func(ws *WindowState, state *SceneState, hr *HotReload) {
		select {
		case _, ok := <-hr.watcher.Events:
			if !ok {
				return
			}
		case err, ok := <-hr.watcher.Errors:
			if ok {
				log.Warnf("hot reload: %v", err)
			}
			return
		default:
			return
		}

		cfg, err := config.Load(state.Path)
		if err == nil {
			err = state.Replace(cfg, ws.Width, ws.Height)
		}
		if err != nil {
			hr.Failed++
			log.Errorf("hot reload: %v", err)
			return
		}
		hr.Reloads++
		log.Infof("hot reload: %s reloaded (generation %d)", state.Path, state.Generation)
	}).InStage(Prelude))

	app.UseShutdown(func(hr *HotReload) {
		if err := hr.watcher.Close(); err != nil {
			log.Warnf("hot reload: %v", err)
		}
	})
}
