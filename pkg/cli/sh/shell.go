package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/l0boot/pkg/boot"
	"github.com/robotalks/l0boot/pkg/bootlog"
	"github.com/robotalks/l0boot/pkg/sim"
	"github.com/robotalks/l0boot/pkg/sim/env"
)

// Shell provides ishell backed interactive shell over a simulated device.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *env.Config
	Flash  *sim.Flash
	// Logger additionally receives boot messages, may be nil.
	Logger boot.Logger
}

// HeaderInfo is the printable form of a partition header.
type HeaderInfo struct {
	Partition boot.Addr `json:"partition"`
	SP        uint32    `json:"sp"`
	Entry     uint32    `json:"entry"`
	Problems  []string  `json:"problems,omitempty"`
}

const (
	shellKey = "$shell"
	prompt   = "bootsim > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	verbosity  = 1

	// commands
	commands = []*ishell.Cmd{
		&LoadCmd,
		&HeaderCmd,
		&CheckCmd,
		&BootCmd,
		&InfoCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.IntVar(&verbosity, "boot-log-v", verbosity, "glog verbosity of boot messages.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		Logger: &bootlog.Glog{Level: glog.Level(verbosity)},
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeLoaded wraps command func requires a loaded image.
func MustBeLoaded(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Flash == nil {
			c.Err(fmt.Errorf("no image loaded"))
			return
		}
		fn(c)
	}
}

// Load loads an image into simulated flash, base overrides the
// configured flash base if non-nil.
func (s *Shell) Load(path string, base *boot.Addr) error {
	conf := *s.Config
	conf.ImagePath = path
	if base != nil {
		conf.FlashBase = env.AddrValue(*base)
	}
	flash, err := conf.Load()
	if err != nil {
		return err
	}
	s.Flash = flash
	return nil
}

// Partition parses the optional partition argument.
func (s *Shell) Partition(args []string) (boot.Addr, error) {
	if len(args) == 0 {
		return boot.Addr(s.Config.Partition), nil
	}
	return env.ParseAddr(args[0])
}

// Header reads the partition header. Problems are only filled if check is set.
func (s *Shell) Header(partition boot.Addr, check bool) (*HeaderInfo, error) {
	h, err := sim.ReadHeader(s.Flash, partition)
	if err != nil {
		return nil, err
	}
	info := &HeaderInfo{Partition: partition, SP: h.SP, Entry: h.Entry}
	if !check {
		return info, nil
	}
	if err := h.Check(); err != nil {
		if herr, ok := err.(*boot.HeaderError); ok {
			info.Problems = herr.Violations
		} else {
			return nil, err
		}
	}
	return info, nil
}

// Boot runs a simulated boot of the partition.
func (s *Shell) Boot(partition boot.Addr) (*sim.Handoff, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Timeout)
	defer cancel()
	return sim.Run(ctx, s.Flash, partition, s.Logger)
}

// print prints v in JSON if requested, otherwise uses fn.
func (s *Shell) print(c *ishell.Context, v interface{}, fn func()) {
	if !s.OutputJSON {
		fn()
		return
	}
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.Config.ImagePath != "" {
		if err := s.Load(s.Config.ImagePath, nil); err != nil {
			log.Fatalf("load %q failed: %v", s.Config.ImagePath, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// LoadCmd loads an image.
	LoadCmd = ishell.Cmd{
		Name:    "load",
		Aliases: []string{"l"},
		Help:    "FILE [BASE]",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("image file expected"))
				return
			}
			var base *boot.Addr
			if len(c.Args) > 1 {
				addr, err := env.ParseAddr(c.Args[1])
				if err != nil {
					c.Err(err)
					return
				}
				base = &addr
			}
			s := ShellFrom(c)
			if err := s.Load(c.Args[0], base); err != nil {
				c.Err(err)
				return
			}
			if !s.OutputJSON {
				c.Printf("loaded %d bytes at 0x%08x\n", len(s.Flash.Data), uint32(s.Flash.Base))
			}
		},
	}

	// HeaderCmd prints the partition header.
	HeaderCmd = ishell.Cmd{
		Name:    "header",
		Aliases: []string{"h"},
		Help:    "[ADDR]",
		Func:    MustBeLoaded(headerFunc(false)),
	}

	// CheckCmd checks the partition header against Cortex-M conventions.
	CheckCmd = ishell.Cmd{
		Name: "check",
		Help: "[ADDR]",
		Func: MustBeLoaded(headerFunc(true)),
	}

	// BootCmd runs a simulated boot.
	BootCmd = ishell.Cmd{
		Name:    "boot",
		Aliases: []string{"b"},
		Help:    "[ADDR]",
		Func: MustBeLoaded(func(c *ishell.Context) {
			s := ShellFrom(c)
			partition, err := s.Partition(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			handoff, err := s.Boot(partition)
			if err != nil {
				c.Err(err)
				return
			}
			s.print(c, handoff, func() {
				for _, msg := range handoff.Messages {
					c.Print(msg)
				}
				c.Printf("handoff: sp=0x%08x entry=0x%08x\n", handoff.SP, handoff.Entry)
			})
		}),
	}

	// InfoCmd prints the simulated device.
	InfoCmd = ishell.Cmd{
		Name: "info",
		Help: "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			id, err := sim.BoardID()
			if err != nil {
				id = "unknown"
			}
			info := struct {
				Board     string    `json:"board"`
				Partition boot.Addr `json:"partition"`
			}{Board: id, Partition: boot.Addr(s.Config.Partition)}
			s.print(c, info, func() {
				c.Printf("board: %s\npartition: 0x%08x\n", info.Board, uint32(info.Partition))
				if s.Flash != nil {
					c.Printf("flash: 0x%08x-0x%08x\n", uint32(s.Flash.Base), s.Flash.End())
				} else {
					c.Println("flash: none")
				}
			})
		},
	}
)

func headerFunc(check bool) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		partition, err := s.Partition(c.Args)
		if err != nil {
			c.Err(err)
			return
		}
		info, err := s.Header(partition, check)
		if err != nil {
			c.Err(err)
			return
		}
		s.print(c, info, func() {
			c.Printf("partition 0x%08x: sp=0x%08x entry=0x%08x\n", uint32(info.Partition), info.SP, info.Entry)
			if check && len(info.Problems) == 0 {
				c.Println("OK")
			}
			for _, p := range info.Problems {
				c.Println("  " + p)
			}
		})
	}
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).Run(flag.Args()...)
}
