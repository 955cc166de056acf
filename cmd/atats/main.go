// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/atats/emulator"
	"github.com/ezrec/atats/translate"
)

func main() {
	var compile string
	var rom string
	var config string
	var ticks int
	var decode bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble and run")
	flag.StringVar(&rom, "r", "", "ROM image to run")
	flag.StringVar(&config, "config", "", ".toml configuration file")
	flag.IntVar(&ticks, "n", 0, "Tick limit (0 for the configured limit)")
	flag.BoolVar(&decode, "d", false, "Disassemble the ROM, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] [config.toml...]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if verbose {
		log.Printf("atats: messages in %v", translate.Language())
	}

	// Every configuration runs as its own machine.
	files := flag.Args()
	if len(config) != 0 {
		files = append([]string{config}, files...)
	}

	var names []string
	var confs []*emulator.Config
	for _, file := range files {
		conf, err := emulator.LoadConfigFile(file)
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}
		names = append(names, file)
		confs = append(confs, conf)
	}

	if len(confs) == 0 {
		names = append(names, os.Args[0])
		confs = append(confs, emulator.NewConfig())
	}

	for _, conf := range confs {
		if len(compile) != 0 {
			conf.Source = compile
			conf.Rom = nil
		}
		if len(rom) != 0 {
			conf.Source = ""
			conf.Rom = []string{rom}
		}
		if verbose {
			conf.Verbose = true
		}
		if ticks != 0 {
			conf.MaxTicks = ticks
		}
	}

	var emus []*emulator.Emulator
	for n, conf := range confs {
		emu, err := conf.Emulator()
		if err != nil {
			log.Fatalf("%v: %v", names[n], err)
		}
		emus = append(emus, emu)
	}

	if decode {
		for n, emu := range emus {
			if len(emus) > 1 {
				fmt.Printf("; %v\n", names[n])
			}
			err := emu.Disassemble(os.Stdout)
			if err != nil {
				log.Fatalf("%v: %v", names[n], err)
			}
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := emulator.RunParallel(ctx, emus...)

	for n, emu := range emus {
		if len(emus) > 1 {
			fmt.Printf("; %v\n", names[n])
		}
		fmt.Printf("%vticks: %d\n", emu.Machine, emu.Ticks)
	}

	if err != nil {
		log.Fatal(err)
	}
}
