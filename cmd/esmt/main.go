// Command esmt loads abstract energy systems, translates them into the
// native solver vocabulary and moves them between serialization formats.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gridmodel/esmt/internal/pkg/cfgdir"
	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/es/example"
	"github.com/gridmodel/esmt/internal/pkg/es2omf"
	"github.com/gridmodel/esmt/internal/pkg/datastreams/natshandler"
	"github.com/gridmodel/esmt/internal/pkg/hdf5io"
	"github.com/gridmodel/esmt/internal/pkg/snapshot"
	"github.com/gridmodel/esmt/internal/pkg/store/mongodb"
	"github.com/gridmodel/esmt/internal/pkg/web"
)

var log = logrus.StandardLogger()

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "esmt",
		Short: "translate abstract energy system models between tool formats",
	}
	root.PersistentFlags().String("cfg", "", "cfg folder holding the system to load")
	root.PersistentFlags().String("example", "fuel", "built-in example system (minimal|fuel|expansion) used when --cfg is empty")
	viper.BindPFlag("cfg", root.PersistentFlags().Lookup("cfg"))
	viper.BindPFlag("example", root.PersistentFlags().Lookup("example"))
	viper.SetEnvPrefix("esmt")
	viper.AutomaticEnv()

	root.AddCommand(showCommand())
	root.AddCommand(translateCommand())
	root.AddCommand(exportCommand())
	root.AddCommand(archiveCommand())
	root.AddCommand(serveCommand())
	return root
}

func loadSystem() (*es.System, error) {
	if dir := viper.GetString("cfg"); dir != "" {
		return cfgdir.Read(dir)
	}
	switch name := viper.GetString("example"); name {
	case "minimal":
		return example.Minimal(), nil
	case "fuel":
		return example.FuelPowered(), nil
	case "expansion":
		return example.Expansion(), nil
	default:
		return nil, fmt.Errorf("unknown example system %q", name)
	}
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "print the nodes and derived edges of a system",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := loadSystem()
			if err != nil {
				return err
			}
			fmt.Printf("system %q: %d nodes, %d periods\n", sys.UID, len(sys.Nodes()), sys.Timeframe.Len())
			for _, n := range sys.Nodes() {
				fmt.Printf("  [%s] %s\n", n.Kind(), n.UID())
			}
			carriers := sys.EdgeCarriers()
			for _, e := range sys.Edges() {
				fmt.Printf("  %s -> %s (%s)\n", e.Source, e.Target, carriers[e])
			}
			for _, issue := range es.Validate(sys) {
				log.Warn(issue.String())
			}
			return nil
		},
	}
}

func translateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "translate a system into the native solver vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := loadSystem()
			if err != nil {
				return err
			}
			native, diags, err := es2omf.Transform(sys, es2omf.WithLogger(log))
			if err != nil {
				return err
			}
			fmt.Printf("translated %q: %d native nodes (%d busses), %d diagnostics\n",
				sys.UID, len(native.Nodes()), len(native.Buses()), len(diags))

			if url := viper.GetString("nats-url"); url != "" {
				handler, err := natshandler.New(url, viper.GetString("nats-subject"))
				if err != nil {
					return err
				}
				defer handler.Close()
				if err := handler.PublishDiagnostics(sys.UID.String(), diags); err != nil {
					return err
				}
				log.Infof("[Translate] published %d diagnostics to %s", len(diags), url)
			}
			return nil
		},
	}
	cmd.Flags().String("nats-url", "", "publish diagnostics to this NATS server")
	cmd.Flags().String("nats-subject", "esmt.diagnostics", "NATS subject for diagnostics")
	viper.BindPFlag("nats-url", cmd.Flags().Lookup("nats-url"))
	viper.BindPFlag("nats-subject", cmd.Flags().Lookup("nats-subject"))
	return cmd
}

func exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "export a system as a cfg folder, an hdf5 file or a binary snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := loadSystem()
			if err != nil {
				return err
			}
			out := viper.GetString("out")
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			switch format := viper.GetString("format"); format {
			case "cfg":
				return cfgdir.Write(out, sys)
			case "hdf5":
				return hdf5io.Write(out, sys)
			case "snapshot":
				return snapshot.SaveFile(out, sys)
			default:
				return fmt.Errorf("unknown export format %q", format)
			}
		},
	}
	cmd.Flags().String("format", "cfg", "export format (cfg|hdf5|snapshot)")
	cmd.Flags().String("out", "", "output folder or file")
	viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("out", cmd.Flags().Lookup("out"))
	return cmd
}

func archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "archive a system in MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := loadSystem()
			if err != nil {
				return err
			}
			cfg, err := mongodb.ReadConfig(viper.GetString("mongo-config"))
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			store, err := mongodb.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Disconnect(ctx)
			if err := store.Archive(ctx, sys); err != nil {
				return err
			}
			log.Infof("[Archive] stored %q in %s", sys.UID, cfg.Database)
			return nil
		},
	}
	cmd.Flags().String("mongo-config", "mongo.json", "JSON file holding the MongoDB URI, port and database")
	viper.BindPFlag("mongo-config", cmd.Flags().Lookup("mongo-config"))
	return cmd
}

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve a read-only JSON view of a system",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := loadSystem()
			if err != nil {
				return err
			}
			addr := viper.GetString("addr")
			log.Infof("[Serve] %q on %s", sys.UID, addr)
			return http.ListenAndServe(addr, web.NewApp(sys).Router())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
