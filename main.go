//go:build !(js && wasm)

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/voxelsplace/voxland/api"
	"github.com/voxelsplace/voxland/codec"
	"github.com/voxelsplace/voxland/config"
	"github.com/voxelsplace/voxland/terrain"
	"github.com/voxelsplace/voxland/voxel"
)

func usage() {
	fmt.Println("Usage: voxland [-config file.yaml] [-v] <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  land2map input.txt output.map [none|zlib|zstd]   (text heightmap -> world file)")
	fmt.Println("  land2glb input.txt output.glb                    (text heightmap -> .glb)")
	fmt.Println("  map2glb input.map output.glb                     (world file -> .glb)")
	fmt.Println("  mapinfo input.map                                (print world file header)")
	fmt.Println("  genland <width> <depth> <seed> output.txt [maxHeight]   (perlin heightmap)")
	fmt.Println("  edit script.txt                                  (apply edits to the saved map and save it)")
	fmt.Println("  slots                                            (list saved maps)")
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file (default $"+config.EnvPath+")")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}

	switch args[0] {
	case "land2map":
		if len(args) != 3 && len(args) != 4 {
			usage()
			os.Exit(1)
		}
		comp, err := cfg.SaveCompression()
		if err != nil {
			fail(err)
		}
		if len(args) == 4 {
			if comp, err = codec.ParseCompression(args[3]); err != nil {
				fail(err)
			}
		}
		if err := runLand2Map(args[1], args[2], comp, log); err != nil {
			fail(err)
		}
	case "land2glb":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		land, err := os.ReadFile(args[1])
		if err != nil {
			fail(err)
		}
		glb, err := api.LandToGLB(land)
		if err != nil {
			fail(err)
		}
		if err := os.WriteFile(args[2], glb, 0o644); err != nil {
			fail(err)
		}
	case "map2glb":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			fail(err)
		}
		glb, err := api.MapToGLB(data)
		if err != nil {
			fail(err)
		}
		if err := os.WriteFile(args[2], glb, 0o644); err != nil {
			fail(err)
		}
	case "mapinfo":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		f, err := os.Open(args[1])
		if err != nil {
			fail(err)
		}
		hdr, err := codec.Info(f)
		f.Close()
		if err != nil {
			fail(err)
		}
		fmt.Printf("version %d, compression %s, %d blocks, checksum %016x\n", hdr.Version, hdr.Compression, hdr.Blocks, hdr.Checksum)
	case "genland":
		if len(args) != 5 && len(args) != 6 {
			usage()
			os.Exit(1)
		}
		var o terrain.Options
		var err error
		if o.Width, err = strconv.Atoi(args[1]); err != nil {
			fail(err)
		}
		if o.Depth, err = strconv.Atoi(args[2]); err != nil {
			fail(err)
		}
		if o.Seed, err = strconv.ParseInt(args[3], 10, 64); err != nil {
			fail(err)
		}
		if len(args) == 6 {
			if o.MaxHeight, err = strconv.Atoi(args[5]); err != nil {
				fail(err)
			}
		}
		if err := terrain.RunGenerateLand(o, args[4]); err != nil {
			fail(err)
		}
	case "edit":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := runEdit(cfg, args[1], log); err != nil {
			fail(err)
		}
	case "slots":
		if err := runSlots(cfg, log); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}

func runLand2Map(in, out string, comp codec.Compression, log *slog.Logger) error {
	land, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	data, res, err := api.LandToMapBytes(land, comp)
	if err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		log.Warn("skipped", "err", d)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Map %dx%d, %d blocks (%d bytes)\n", res.Width, res.Height, res.Blocks, len(data))
	return nil
}

// runEdit loads the saved map (or the land map when nothing is saved yet),
// applies the script and saves the result.
func runEdit(cfg *config.Config, script string, log *slog.Logger) error {
	m, err := api.NewManager(cfg, log)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.LoadMap(); err != nil {
		if !errors.Is(err, voxel.ErrNotFound) {
			return err
		}
		if _, err := m.Start(); err != nil {
			return err
		}
	}
	f, err := os.Open(script)
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := api.RunScript(m, f)
	if err != nil {
		return err
	}
	fmt.Printf("Built %d, destroyed %d, rejected %d\n", st.Built, st.Destroyed, st.Rejected)
	return m.SaveMap()
}

func runSlots(cfg *config.Config, log *slog.Logger) error {
	m, err := api.NewManager(cfg, log)
	if err != nil {
		return err
	}
	defer m.Close()
	names, err := m.Store().List()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
