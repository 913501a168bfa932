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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	catalogcmd "github.com/vflab/go-vflog/cmd/catalog"
	"github.com/vflab/go-vflog/cmd/completion"
	configcmd "github.com/vflab/go-vflog/cmd/config"
	"github.com/vflab/go-vflog/cmd/parse"
	"github.com/vflab/go-vflog/cmd/serve"
	pkgconfig "github.com/vflab/go-vflog/pkg/config"
	"github.com/vflab/go-vflog/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "vflog",
		Short: "Tool to convert vacuum furnace logger .bin files to CSV",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(parse.NewCommand())
	cmd.AddCommand(catalogcmd.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(configcmd.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}
