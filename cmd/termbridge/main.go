package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/you/termbridge/domain"
	"github.com/you/termbridge/internal/app"
	"github.com/you/termbridge/internal/config"
	"github.com/you/termbridge/internal/services"
)

const usage = `usage: termbridge <command> [arguments]

commands:
  login <abha-id> <phone>          sign in with ABHA credentials
  logout                           sign out and erase the stored token
  whoami                           show the current session
  profile                          show the signed-in user's profile
  search <namaste|icd> <query>     search a code system
  translate <NAM|TM2> <code>       translate a code (--save records it)
  history                          list past translations
  save <flags>                     explicitly record one translation
`

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "termbridge: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.SessionSvc.Initialize(ctx); err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return cmdLogin(ctx, c, rest)
	case "logout":
		c.SessionSvc.Logout(ctx)
		fmt.Println("signed out")
		return nil
	case "whoami":
		return cmdWhoami(c)
	case "profile":
		return cmdProfile(ctx, c)
	case "search":
		return cmdSearch(ctx, c, rest)
	case "translate":
		return cmdTranslate(ctx, c, rest)
	case "history":
		return cmdHistory(ctx, c)
	case "save":
		return cmdSave(ctx, c, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func requireAllowed(c *app.Container, operation string) error {
	if !c.SessionSvc.Allows(operation) {
		return fmt.Errorf("%s requires a signed-in session; run 'termbridge login' first", operation)
	}
	return nil
}

func cmdLogin(ctx context.Context, c *app.Container, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: termbridge login <abha-id> <phone>")
	}
	if err := c.SessionSvc.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	user := c.SessionSvc.CurrentUser()
	fmt.Printf("signed in as %s (%s)\n", user.Name, user.ABHAID)
	return nil
}

func cmdWhoami(c *app.Container) error {
	status := c.SessionSvc.Status()
	fmt.Printf("status: %s\n", status)
	if user := c.SessionSvc.CurrentUser(); user != nil {
		fmt.Printf("account: %s (%s)\n", user.Name, user.ABHAID)
	}
	return nil
}

func cmdProfile(ctx context.Context, c *app.Container) error {
	if err := requireAllowed(c, services.OpProfile); err != nil {
		return err
	}
	profile, err := c.Gateway.FetchProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("ABHA ID:  %s\n", profile.ABHAID)
	fmt.Printf("Name:     %s\n", profile.Name)
	fmt.Printf("Email:    %s\n", profile.Email)
	fmt.Printf("Phone:    %s\n", profile.Phone)
	fmt.Printf("DOB:      %s\n", profile.DOB)
	fmt.Printf("Gender:   %s\n", profile.Gender)
	fmt.Printf("Address:  %s\n", profile.Address)
	fmt.Printf("Created:  %s\n", profile.CreatedAt)
	return nil
}

func cmdSearch(ctx context.Context, c *app.Container, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: termbridge search <namaste|icd> <query>")
	}
	if err := requireAllowed(c, services.OpSearch); err != nil {
		return err
	}
	concepts, err := c.Gateway.Search(ctx, domain.SearchSystem(args[0]), args[1])
	if err != nil {
		return err
	}
	if len(concepts) == 0 {
		fmt.Println("no matching concepts")
		return nil
	}
	for _, concept := range concepts {
		line := fmt.Sprintf("%-12s %s", concept.Code, concept.Display)
		if concept.Definition != "" {
			line += " — " + concept.Definition
		}
		fmt.Println(line)
	}
	return nil
}

func cmdTranslate(ctx context.Context, c *app.Container, args []string) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	save := fs.Bool("save", false, "record this lookup in the signed-in user's history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: termbridge translate [--save] <NAM|TM2> <code>")
	}
	if err := requireAllowed(c, services.OpTranslate); err != nil {
		return err
	}
	mappings, err := c.Gateway.Translate(ctx, domain.TranslateSystem(fs.Arg(0)), fs.Arg(1), *save)
	if err != nil {
		return err
	}
	if len(mappings) == 0 {
		fmt.Println("no mappings found")
		return nil
	}
	for _, m := range mappings {
		fmt.Printf("%s -> %s (%s)  SNOMED CT: %s  LOINC: %s\n",
			m.SourceCode, m.TargetCode, m.Relationship, m.SnomedCTCode, m.LoincCode)
	}
	return nil
}

func cmdHistory(ctx context.Context, c *app.Container) error {
	if err := requireAllowed(c, services.OpHistory); err != nil {
		return err
	}
	history, err := c.Gateway.FetchHistory(ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("no translation history")
		return nil
	}
	for _, entry := range history {
		fmt.Printf("%s  %s:%s -> %s:%s  SNOMED CT: %s  LOINC: %s\n",
			entry.Timestamp.Format("2006-01-02 15:04"),
			entry.SourceSystem, entry.SourceCode,
			entry.TargetSystem, entry.TargetCode,
			entry.SnomedCTCode, entry.LoincCode)
	}
	return nil
}

func cmdSave(ctx context.Context, c *app.Container, args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	rec := &domain.TranslationRecord{}
	fs.StringVar(&rec.SourceSystem, "source-system", "", "source code system")
	fs.StringVar(&rec.SourceCode, "source-code", "", "source code")
	fs.StringVar(&rec.TargetSystem, "target-system", "", "target code system")
	fs.StringVar(&rec.TargetCode, "target-code", "", "target code")
	fs.StringVar(&rec.SnomedCTCode, "snomed", "", "SNOMED CT cross-reference")
	fs.StringVar(&rec.LoincCode, "loinc", "", "LOINC cross-reference")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rec.SourceCode == "" || rec.TargetCode == "" {
		return fmt.Errorf("save requires at least --source-code and --target-code")
	}
	if err := requireAllowed(c, services.OpSave); err != nil {
		return err
	}
	id, err := c.Gateway.SaveTranslation(ctx, rec)
	if err != nil {
		return err
	}
	fmt.Printf("saved history entry %d\n", id)
	return nil
}
