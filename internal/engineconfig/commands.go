package engineconfig

import (
	"flag"

	"air-track/internal/commands"
	"air-track/internal/logger"
)

// RegisterCommands adds console commands that edit and persist p:
// "debug" toggles debug logging, "save" writes p to path.
// sync, if set, is called before saving so the caller can copy live state into p.
func RegisterCommands(reg *commands.Registry, path string, p *EnginePrefs, log *logger.Logger, sync func(*EnginePrefs)) {
	reg.Register("debug", "toggle or set debug logging", func(fs *flag.FlagSet) func([]string) error {
		on := fs.Bool("on", false, "debug logging on or off; omit to toggle")
		return func([]string) error {
			enabled := !p.Debug
			if commands.IsSet(fs, "on") {
				enabled = *on
			}
			p.Debug = enabled
			log.SetDebug(enabled)
			log.Infof("debug=%v", enabled)
			return nil
		}
	})

	reg.Register("save", "write engine preferences", func(fs *flag.FlagSet) func([]string) error {
		to := fs.String("to", path, "file to write")
		return func([]string) error {
			if sync != nil {
				sync(p)
			}
			if err := p.Validate(); err != nil {
				return err
			}
			if err := Save(*to, *p); err != nil {
				return err
			}
			log.Infof("saved preferences to %s", *to)
			return nil
		}
	})
}
