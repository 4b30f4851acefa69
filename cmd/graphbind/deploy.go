package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl2/hcl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graphbind/graphbind/api"
	"github.com/graphbind/graphbind/config"
	"github.com/graphbind/graphbind/provider"
	awsprovider "github.com/graphbind/graphbind/provider/aws"
	"github.com/graphbind/graphbind/provider/mock"
	"github.com/graphbind/graphbind/schema"
	"github.com/graphbind/graphbind/storage/bolt"
)

var deployCommand = &cobra.Command{
	Use:   "deploy [dir]",
	Short: "Deploy the project's API, data sources and resolvers",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		loader := &config.Loader{}
		rootDir, err := loader.Root(args[0])
		if err != nil {
			fatal(err)
		}
		if rootDir == "" {
			fmt.Fprintln(os.Stderr, "Project not found")
			os.Exit(2)
		}

		project, err := loader.Load(rootDir)
		if err != nil {
			if diags, ok := err.(hcl.Diagnostics); ok {
				loader.WriteDiagnostics(os.Stderr, diags)
				os.Exit(1)
			}
			fatal(err)
		}

		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			fatal(err)
		}
		logCfg := zap.NewDevelopmentConfig()
		if !verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
		}
		logger, err := logCfg.Build()
		if err != nil {
			fatal(err)
		}

		dry, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			fatal(err)
		}
		var prov provider.Provider
		if dry {
			prov = &mock.Provider{}
		} else {
			region, err := cmd.Flags().GetString("region")
			if err != nil {
				fatal(err)
			}
			prov = &awsprovider.Provider{Region: region}
		}

		stateFile, err := bolt.DefaultFile()
		if err != nil {
			fatal(err)
		}
		state, err := bolt.New(stateFile)
		if err != nil {
			fatal(err)
		}
		defer state.Close()

		ctx := signalContext(context.Background())

		if err := deploy(ctx, prov, state, project, logger); err != nil {
			fatal(err)
		}
		fmt.Printf("Deployed %s\n", project.Name)
	},
}

// deploy realizes the project and records the created resources.
func deploy(ctx context.Context, prov provider.Provider, state *bolt.Store, project *config.Project, logger *zap.Logger) error {
	// The core is append-only; a project that was already realized cannot be
	// re-driven into the same API.
	if _, err := state.Get(ctx, project.Name, "api", project.Name); err == nil {
		return errors.Errorf("project %s is already deployed; delete it before deploying again", project.Name)
	} else if errors.Cause(err) != bolt.ErrNotFound {
		return err
	}

	doc, err := schema.Load(ctx, schema.Files(project.SchemaFiles...)...)
	if err != nil {
		return err
	}

	a, err := api.New(ctx, prov, api.Config{
		Name:               project.Name,
		AuthenticationType: project.AuthenticationType,
		Schema:             doc,
		Defaults:           project.Defaults,
		DataSources:        project.DataSources,
		Resolvers:          project.Resolvers,
	}, api.WithLogger(logger))
	if err != nil {
		return err
	}

	deployment := bolt.NewDeploymentID()
	put := func(kind, key, id string) error {
		return state.Put(ctx, project.Name, bolt.Record{
			Kind:       kind,
			Key:        key,
			ID:         id,
			Deployment: deployment,
		})
	}

	if err := put("api", project.Name, a.Handle().ID()); err != nil {
		return err
	}
	for key := range project.DataSources {
		if err := put("datasource", key, a.DataSource(key).ID()); err != nil {
			return err
		}
	}
	for key := range project.Resolvers {
		if err := put("resolver", key, a.Resolver(key).ID()); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	deployCommand.Flags().Bool("dry-run", false, "Resolve the project without creating resources")
	deployCommand.Flags().Bool("verbose", false, "Log resource creation")
	deployCommand.Flags().String("region", "", "Region to create resources in")

	Graphbind.AddCommand(deployCommand)
}
