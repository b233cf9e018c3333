package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gtaimg/internal/imgarchive"
	"gtaimg/internal/imgconfig"
	"gtaimg/internal/version"
)

var logger = log.New(os.Stderr, "imgtool: ", 0)

func main() {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "path to a JSON engine config (defaults applied for anything omitted)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.Get().String())
		return
	}

	cfg := imgconfig.Default()
	if configPath != "" {
		loaded, err := imgconfig.Load(configPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = loaded
	}

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	cmd := strings.ToLower(args[0])
	rest := args[1:]

	var err error
	switch cmd {
	case "create":
		err = cmdCreate(cfg, rest)
	case "info":
		err = cmdInfo(rest)
	case "list":
		err = cmdList(rest)
	case "import":
		err = cmdImport(cfg, rest)
	case "extract":
		err = cmdExtract(rest)
	case "rename":
		err = cmdRename(rest)
	case "replace":
		err = cmdReplace(cfg, rest)
	case "remove":
		err = cmdRemove(rest)
	case "pack":
		err = cmdPack(cfg, rest)
	case "sync":
		err = cmdSync(rest)
	case "guess-version":
		err = cmdGuessVersion(rest)
	case "verify":
		err = cmdVerify(rest)
	case "version":
		fmt.Println(version.Get().String())
		return
	default:
		fmt.Printf("unknown command: %s\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		if ae, ok := err.(*imgarchive.ArchiveError); ok {
			logger.Fatalf("%s: %v", ae.Kind(), ae)
		}
		logger.Fatal(err)
	}
}

func usage() {
	fmt.Println("Usage: imgtool [-config path] [-version] <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  create <path> [ver1|ver2]")
	fmt.Println("  info <path>")
	fmt.Println("  list <path>")
	fmt.Println("  import <path> <name> <source-file>")
	fmt.Println("  extract <path> <name> <dest-file>")
	fmt.Println("  rename <path> <old-name> <new-name>")
	fmt.Println("  replace <path> <name> <source-file>")
	fmt.Println("  remove <path> <name>")
	fmt.Println("  pack <path>")
	fmt.Println("  sync <path>")
	fmt.Println("  guess-version <path>")
	fmt.Println("  verify <path>")
}

func cmdCreate(cfg *imgconfig.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("create <path> [ver1|ver2]")
	}
	path := args[0]
	verName := cfg.DefaultCreateVersion
	if len(args) >= 2 {
		verName = strings.ToLower(args[1])
	}
	var ver imgarchive.Version
	switch verName {
	case "ver1":
		ver = imgarchive.VER1
	case "ver2":
		ver = imgarchive.VER2
	default:
		return fmt.Errorf("unknown version %q, want ver1 or ver2", verName)
	}

	a, err := imgarchive.CreateWithConfig(path, ver, cfg)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()
	if err := a.Sync(); err != nil {
		return err
	}
	fmt.Printf("created %s (%s)\n", path, a.VersionOf())
	return nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info <path>")
	}
	a, err := imgarchive.Open(args[0], imgarchive.ReadOnly)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	blocks, err := a.SizeInBlocks()
	if err != nil {
		return err
	}
	fmt.Printf("path:    %s\n", a.Path())
	fmt.Printf("version: %s\n", a.VersionOf())
	fmt.Printf("entries: %d\n", a.EntryCount())
	fmt.Printf("size:    %d blocks (%d bytes)\n", blocks, int64(blocks)*imgarchive.BlockSize)
	return nil
}

func cmdList(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("list <path>")
	}
	a, err := imgarchive.Open(args[0], imgarchive.ReadOnly)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	for _, e := range a.Iterate() {
		fmt.Printf("%-24s offset=%-10d size=%-10d blocks\n", e.Name, e.Offset, e.Size)
	}
	return nil
}

func cmdImport(cfg *imgconfig.Config, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("import <path> <name> <source-file>")
	}
	path, name, source := args[0], args[1], args[2]
	a, err := imgarchive.OpenWithConfig(path, imgarchive.ReadWrite, cfg)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	if err := a.ImportFile(source, name); err != nil {
		return err
	}
	if err := a.Sync(); err != nil {
		return err
	}
	fmt.Printf("imported %s as %s\n", source, name)
	return nil
}

func cmdExtract(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("extract <path> <name> <dest-file>")
	}
	path, name, dest := args[0], args[1], args[2]
	a, err := imgarchive.Open(path, imgarchive.ReadOnly)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	if err := a.ExtractEntry(name, dest); err != nil {
		return err
	}
	fmt.Printf("extracted %s to %s\n", name, dest)
	return nil
}

func cmdRename(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("rename <path> <old-name> <new-name>")
	}
	path, oldName, newName := args[0], args[1], args[2]
	a, err := imgarchive.Open(path, imgarchive.ReadWrite)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	if err := a.RenameEntry(oldName, newName); err != nil {
		return err
	}
	if err := a.Sync(); err != nil {
		return err
	}
	fmt.Printf("renamed %s to %s\n", oldName, newName)
	return nil
}

func cmdReplace(cfg *imgconfig.Config, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("replace <path> <name> <source-file>")
	}
	path, name, source := args[0], args[1], args[2]
	a, err := imgarchive.OpenWithConfig(path, imgarchive.ReadWrite, cfg)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	if err := a.ReplaceEntry(name, source); err != nil {
		return err
	}
	if err := a.Sync(); err != nil {
		return err
	}
	fmt.Printf("replaced %s with %s\n", name, source)
	return nil
}

func cmdRemove(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("remove <path> <name>")
	}
	path, name := args[0], args[1]
	a, err := imgarchive.Open(path, imgarchive.ReadWrite)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	if err := a.RemoveEntry(name); err != nil {
		return err
	}
	if err := a.Sync(); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", name)
	return nil
}

func cmdPack(cfg *imgconfig.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("pack <path>")
	}
	path := args[0]
	a, err := imgarchive.OpenWithConfig(path, imgarchive.ReadWrite, cfg)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	blocks, err := a.Pack()
	if err != nil {
		return err
	}
	if err := a.Sync(); err != nil {
		return err
	}
	fmt.Printf("packed to %d blocks (%d bytes)\n", blocks, int64(blocks)*imgarchive.BlockSize)
	return nil
}

func cmdSync(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("sync <path>")
	}
	a, err := imgarchive.Open(args[0], imgarchive.ReadWrite)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()
	if err := a.Sync(); err != nil {
		return err
	}
	fmt.Println("synced")
	return nil
}

func cmdGuessVersion(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("guess-version <path>")
	}
	v, err := imgarchive.GuessVersion(args[0])
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

func cmdVerify(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("verify <path>")
	}
	a, err := imgarchive.Open(args[0], imgarchive.ReadOnly)
	if err != nil {
		return err
	}
	defer a.CloseWithoutSync()

	if err := a.VerifyLayout(); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}
