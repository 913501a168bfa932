/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgcatalog "github.com/vflab/go-vflog/pkg/catalog"
	"github.com/vflab/go-vflog/pkg/command"
	"github.com/vflab/go-vflog/pkg/config"
)

const (
	RemoteOptionName = "remote"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the conversion catalog",
	}
	cmd.AddCommand(NewListCommand())
	return cmd
}

func NewListCommand() *cobra.Command {
	var remote bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List converted files",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := listEntries(cfg, remote)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d records [%s .. %s]\n",
					entry.Source, entry.Output, entry.Records, entry.First, entry.Last)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Query a running vflog API server")
	return cmd
}

func listEntries(cfg *config.Config, remote bool) ([]*pkgcatalog.Entry, error) {
	if remote {
		apiClient := command.NewApiClient(cfg)
		return apiClient.ListCatalog()
	}
	ctl, err := pkgcatalog.Open(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	defer ctl.Close()
	return ctl.List()
}
