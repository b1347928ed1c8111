package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"liyu1981.xyz/iot-dashboard/pkg/buildconfig"
	"liyu1981.xyz/iot-dashboard/pkg/common"
)

type buildConfigOutput struct {
	Config    *buildconfig.Config `json:"config"`
	IndexFile string              `json:"index_file"`
	Imports   map[string]string   `json:"imports,omitempty"`
}

func newBuildConfigCmd() *cobra.Command {
	var (
		configPath string
		root       string
		imports    []string
	)

	buildConfigCmd := &cobra.Command{
		Use:   "build-config",
		Short: "Print the front-end build config resolved against a project root",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = common.GetEnvOrDefault(common.EnvKeyIOTWebConfig, defaultWebConfig)
			}

			cfg, err := buildconfig.Load(configPath)
			if err != nil {
				return err
			}
			resolved, err := cfg.Resolve(root)
			if err != nil {
				return err
			}

			out := buildConfigOutput{Config: resolved, IndexFile: resolved.IndexFile()}
			for _, spec := range imports {
				path, ok := resolved.ResolveImport(spec)
				if !ok {
					return fmt.Errorf("import %q matches no alias", spec)
				}
				if out.Imports == nil {
					out.Imports = map[string]string{}
				}
				out.Imports[spec] = path
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	buildConfigCmd.Flags().StringVar(&configPath, "config", "", "build config file, defaults to IOT_WEB_CONFIG or web.yaml")
	buildConfigCmd.Flags().StringVar(&root, "root", ".", "project root the paths are resolved against")
	buildConfigCmd.Flags().StringSliceVar(&imports, "resolve-import", nil, "aliased imports to resolve, e.g. @/lib/utils")

	return buildConfigCmd
}
