// Package all registers all shell commands.
package all

import (
	// command providers register in init
	_ "github.com/robotalks/easyvr.go/pkg/cli/cmds/commands"
	_ "github.com/robotalks/easyvr.go/pkg/cli/cmds/module"
	_ "github.com/robotalks/easyvr.go/pkg/cli/cmds/sound"
	_ "github.com/robotalks/easyvr.go/pkg/cli/cmds/storage"
)
