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

package parse

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vflab/go-vflog/pkg/catalog"
	"github.com/vflab/go-vflog/pkg/command"
	"github.com/vflab/go-vflog/pkg/config"
	"github.com/vflab/go-vflog/pkg/convert"
	"github.com/vflab/go-vflog/pkg/log"
	"github.com/vflab/go-vflog/pkg/report"
	"github.com/vflab/go-vflog/pkg/srv"
)

const (
	OutputOptionName   = "output"
	MergeOptionName    = "merge"
	EncodingOptionName = "encoding"
	ForceOptionName    = "force"
	RemoteOptionName   = "remote"
)

func NewCommand() *cobra.Command {
	var output, encoding string
	var merge, force, remote bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "parse <file|dir> ...",
		Short: "Convert logger .bin files to CSV",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if encoding != "" {
				cfg.Encoding = encoding
			}
			if output != "" {
				merge = true
			}
			if merge && output == "" {
				return errors.New("Merge mode needs an output path, use --output")
			}

			if remote {
				return runRemote(cmd, cfg, args, output, merge, force)
			}
			return runLocal(cmd, cfg, args, output, merge, force)
		},
	}
	cmd.Flags().StringVarP(&output, OutputOptionName, "o", "", "Path of the merged CSV. Implies --merge.")
	cmd.Flags().BoolVar(&merge, MergeOptionName, false, "Merge all inputs into a single CSV")
	cmd.Flags().StringVar(&encoding, EncodingOptionName, "", fmt.Sprintf("CSV output encoding. %s", report.HelpEncodings))
	cmd.Flags().BoolVar(&force, ForceOptionName, false, "Convert files even if the catalog says they are unchanged")
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Send the batch to a running vflog API server")
	return cmd
}

func runLocal(cmd *cobra.Command, cfg *config.Config, args []string, output string, merge, force bool) error {
	encoder, err := report.NewTextEncoder(cfg.Encoding)
	if err != nil {
		return err
	}
	paths, err := convert.CollectInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("No input files found")
	}

	converter := &convert.Converter{Encoder: encoder, Force: force}
	ctl, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		log.Warning("Running without catalog: %s", err)
	} else {
		converter.Catalog = ctl
		defer ctl.Close()
	}

	var result *convert.Result
	if merge {
		result, err = converter.MergeFiles(paths, output)
	} else {
		result, err = converter.ConvertEach(paths)
	}
	if err != nil {
		return err
	}
	printResult(cmd, result)
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(result.Failed), len(paths))
	}
	return nil
}

func runRemote(cmd *cobra.Command, cfg *config.Config, args []string, output string, merge, force bool) error {
	apiClient := command.NewApiClient(cfg)
	response, err := apiClient.Parse(&srv.ParseRequest{
		Files:    args,
		Output:   output,
		Merge:    merge,
		Encoding: cfg.Encoding,
		Force:    force,
	})
	if err != nil {
		return err
	}
	printResult(cmd, &convert.Result{
		Outputs: response.Outputs,
		Records: response.Records,
		Skipped: response.Skipped,
		Failed:  response.Failed,
	})
	if len(response.Failed) > 0 {
		return fmt.Errorf("%d files failed", len(response.Failed))
	}
	return nil
}

func printResult(cmd *cobra.Command, result *convert.Result) {
	for _, output := range result.Outputs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", output)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d records, %d skipped, %d failed\n",
		result.Records, len(result.Skipped), len(result.Failed))
}
