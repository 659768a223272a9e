package patch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/hashicorp/go-multierror"

	"ide-config/internal/config"
	"ide-config/internal/ideaxml"
)

const (
	DataSourcesFile = "dataSources.xml"
	PHPFile         = "php.xml"
	WorkspaceFile   = "workspace.xml"
	MiscFile        = "misc.xml"

	DataSourceName  = "neos-local"
	InterpreterName = "PHP devenv.sh"
	InterpreterID   = "EC918378-8957-4AEA-9FA0-CD4A10A174E6"
	InterpreterHome = "$PROJECT_DIR$/.devenv/profile/bin/php"
	DebuggerID      = "php.debugger.XDebug"
)

// ErrUnknownPatch được trả về khi tên patch không tồn tại.
var ErrUnknownPatch = errors.New("unknown patch")

// dataSourceTemplate is filled with port then user. Values are inserted
// as-is; the IDE reads this block back byte for byte.
const dataSourceTemplate = `
    <driver-ref>mysql</driver-ref>
    <synchronize>true</synchronize>
    <jdbc-driver>org.mariadb.jdbc.Driver</jdbc-driver>
    <jdbc-url>jdbc:mysql://127.0.0.1:%s</jdbc-url>
    <working-dir>$ProjectFileDir$</working-dir>
    <user-name>%s</user-name>
`

const neosPluginFragment = `
    <option name="pluginEnabled" value="true" />
`

// Patch edits a single settings file below the IDE directory.
type Patch struct {
	Name  string
	File  string
	Apply func(root *etree.Element, cfg *config.Config) error
}

// Default returns the project patches in the order they are applied.
func Default() []Patch {
	return []Patch{
		DataSources(),
		PHPInterpreter(),
		Workspace(),
		NeosPlugin(),
	}
}

// DataSourceFragment renders the connection block of the local data source.
func DataSourceFragment(user, port string) string {
	return fmt.Sprintf(dataSourceTemplate, port, user)
}

// DataSources points the "neos-local" data source at the local database.
func DataSources() Patch {
	return Patch{
		Name: "DataSources",
		File: DataSourcesFile,
		Apply: func(root *etree.Element, cfg *config.Config) error {
			component := ideaxml.GetElement(root, "component", "DataSourceManagerImpl", func(el *etree.Element) {
				el.CreateAttr("format", "xml")
				el.CreateAttr("multifile-model", "true")
			})
			dataSource := ideaxml.GetElement(component, "data-source", DataSourceName, nil)

			return ideaxml.ReplaceChildren(dataSource, DataSourceFragment(cfg.DB.User, cfg.DB.Port))
		},
	}
}

// PHPInterpreter registers the devenv PHP binary as an interpreter.
func PHPInterpreter() Patch {
	return Patch{
		Name: "PHPInterpreter",
		File: PHPFile,
		Apply: func(root *etree.Element, _ *config.Config) error {
			component := ideaxml.GetElement(root, "component", "PhpInterpreters", nil)
			interpreters := ideaxml.GetElement(component, "interpreters", "", nil)
			interpreter := ideaxml.GetElement(interpreters, "interpreter", InterpreterName, nil)

			interpreter.CreateAttr("id", InterpreterID)
			interpreter.CreateAttr("home", InterpreterHome)
			interpreter.CreateAttr("false", "false")
			interpreter.CreateAttr("debugger_id", DebuggerID)

			return nil
		},
	}
}

// Workspace selects the devenv interpreter for the project.
func Workspace() Patch {
	return Patch{
		Name: "Workspace",
		File: WorkspaceFile,
		Apply: func(root *etree.Element, _ *config.Config) error {
			component := ideaxml.GetElement(root, "component", "PhpWorkspaceProjectConfiguration", nil)
			component.CreateAttr("interpreter_name", InterpreterName)

			return nil
		},
	}
}

// NeosPlugin enables the Neos plugin.
func NeosPlugin() Patch {
	return Patch{
		Name: "NeosPlugin",
		File: MiscFile,
		Apply: func(root *etree.Element, _ *config.Config) error {
			component := ideaxml.GetElement(root, "component", "NeosPluginSettings", nil)

			return ideaxml.ReplaceChildren(component, neosPluginFragment)
		},
	}
}

// Select keeps the patches whose names are listed, in application order.
// Names are matched case-insensitively. An empty list selects everything.
func Select(patches []Patch, names []string) ([]Patch, error) {
	if len(names) == 0 {
		return patches, nil
	}

	var merr *multierror.Error
	for _, name := range names {
		if !contains(patches, name) {
			merr = multierror.Append(merr, fmt.Errorf("%w: %q", ErrUnknownPatch, name))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	selected := make([]Patch, 0, len(names))
	for _, p := range patches {
		for _, name := range names {
			if strings.EqualFold(p.Name, name) {
				selected = append(selected, p)
				break
			}
		}
	}

	return selected, nil
}

func contains(patches []Patch, name string) bool {
	for _, p := range patches {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}
