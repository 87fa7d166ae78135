package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/infra/api"
	"github.com/CrestNiraj12/chirpterm/infra/auth"
	"github.com/CrestNiraj12/chirpterm/infra/config"
	"github.com/CrestNiraj12/chirpterm/infra/editor"
	"github.com/CrestNiraj12/chirpterm/infra/logging"
	"github.com/CrestNiraj12/chirpterm/thread"
	"github.com/CrestNiraj12/chirpterm/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliDump
	cliLogin
	cliLogout
	cliStatus
	cliVersion
	cliHelp
	cliInvalid
)

// parseCLIArgs returns the mode and its argument: a thread id for run and
// dump, a username for login, or an error message for invalid input.
func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	case "dump":
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return cliInvalid, "dump needs exactly one thread id"
		}
		return cliDump, strings.TrimSpace(args[1])
	case "login":
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return cliInvalid, "login needs exactly one username"
		}
		return cliLogin, strings.TrimSpace(args[1])
	case "logout":
		return argless(cliLogout, args)
	case "status":
		return argless(cliStatus, args)
	}

	if strings.HasPrefix(args[0], "-") || len(args) > 1 {
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
	return cliRun, args[0]
}

func argless(mode cliMode, args []string) (cliMode, string) {
	if len(args) > 1 {
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args[1:], " "))
	}
	return mode, ""
}

func usage() string {
	return strings.Join([]string{
		"Usage: chirpterm [thread-id]",
		"       chirpterm dump <thread-id>",
		"       chirpterm login <username>",
		"       chirpterm logout",
		"       chirpterm status",
		"       chirpterm [--version|-version|-v] [--help|-h]",
	}, "\n")
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, arg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("chirpterm %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", arg, usage())
		os.Exit(2)
	}

	// 1. Load config from the config file and environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tokens := auth.NewFileTokenProvider(cfg.TokenPath)
	switch mode {
	case cliLogin:
		err = runLogin(ctx, cfg, tokens, arg)
	case cliLogout:
		err = runLogout(tokens)
	case cliStatus:
		err = runStatus(ctx, cfg, tokens, os.Stdout)
	case cliDump:
		err = runDump(ctx, cfg, tokens, log, arg, os.Stdout)
	default:
		err = runTUI(cfg, tokens, log, arg)
	}
	if err != nil {
		log.Error("chirpterm failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "chirpterm: %v\n", err)
		stop()
		_ = log.Sync()
		os.Exit(1)
	}
}

func newServices(cfg config.Config, tokens auth.TokenProvider, log *zap.Logger) thread.Deps {
	client := api.NewClient(cfg.APIURL, tokens, cfg.RequestTimeout, log)
	return thread.Deps{
		Threads:          api.NewThreadService(client),
		Posts:            api.NewPostService(client),
		Session:          auth.NewSession(tokens),
		Logger:           log,
		NestedFetchLimit: cfg.NestedFetchLimit,
	}
}

func runTUI(cfg config.Config, tokens *auth.FileTokenProvider, log *zap.Logger, threadID string) error {
	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Warn("ignoring ui state", zap.Error(err))
	}
	if threadID == "" {
		threadID = uiState.LastThreadID
	}
	if threadID == "" {
		return errors.New("no thread id given and none remembered\n" + usage())
	}
	if threadID != uiState.LastThreadID {
		uiState.LastThreadID = threadID
		if err := config.SaveUIState(cfg.UIStatePath, uiState); err != nil {
			log.Warn("saving ui state", zap.Error(err))
		}
	}

	// 2. Build services (concrete types satisfy app.* interfaces).
	deps := newServices(cfg, tokens, log)

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		ThreadID:         threadID,
		Threads:          deps.Threads,
		Posts:            deps.Posts,
		Session:          deps.Session,
		Editor:           editor.NewEnvEditor(),
		Logger:           log,
		NestedFetchLimit: cfg.NestedFetchLimit,
		ToastDuration:    cfg.ToastDuration,
		UIState:          uiState,
		UIStatePath:      cfg.UIStatePath,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

func runLogin(ctx context.Context, cfg config.Config, tokens *auth.FileTokenProvider, username string) error {
	password, err := readPassword(os.Stdin, os.Stderr)
	if err != nil {
		return err
	}
	if err := auth.Login(ctx, cfg.APIURL, username, password, tokens); err != nil {
		if domain.IsAuth(err) {
			return errors.New("login failed: wrong username or password")
		}
		return fmt.Errorf("login: %w", err)
	}
	fmt.Printf("Signed in as @%s.\n", strings.TrimPrefix(username, "@"))
	return nil
}

// readPassword takes CHIRPTERM_PASSWORD when set, prompts without echo on a
// terminal, and otherwise reads one line from in.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	if pw, ok := os.LookupEnv("CHIRPTERM_PASSWORD"); ok {
		return pw, nil
	}
	if term.IsTerminal(int(in.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(tokens *auth.FileTokenProvider) error {
	if err := auth.Logout(tokens); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func runStatus(ctx context.Context, cfg config.Config, tokens auth.TokenProvider, out io.Writer) error {
	token, err := tokens.AccessToken()
	if errors.Is(err, auth.ErrNoToken) {
		fmt.Fprintf(out, "Not signed in (%s).\n", cfg.APIURL)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	ok, err := auth.ValidateToken(ctx, cfg.APIURL, token)
	if err != nil {
		return fmt.Errorf("checking token: %w", err)
	}
	if !ok {
		fmt.Fprintf(out, "Stored token was rejected by %s. Run: chirpterm login <username>\n", cfg.APIURL)
		return nil
	}
	fmt.Fprintf(out, "Signed in to %s.\n", cfg.APIURL)
	return nil
}

type dumpPost struct {
	ID             string     `json:"id"`
	ParentReplyID  string     `json:"parent_reply_id,omitempty"`
	Author         string     `json:"author"`
	Content        string     `json:"content"`
	LikesCount     int        `json:"likes_count"`
	RepliesCount   int        `json:"replies_count"`
	BookmarksCount int        `json:"bookmarks_count"`
	Liked          bool       `json:"liked"`
	Bookmarked     bool       `json:"bookmarked"`
	Replies        []dumpPost `json:"replies,omitempty"`
}

func toDump(p domain.Post) dumpPost {
	return dumpPost{
		ID:             p.ID,
		ParentReplyID:  p.ParentReplyID,
		Author:         p.Author.Username,
		Content:        p.Content,
		LikesCount:     p.LikesCount,
		RepliesCount:   p.RepliesCount,
		BookmarksCount: p.BookmarksCount,
		Liked:          p.Liked,
		Bookmarked:     p.Bookmarked,
	}
}

// runDump loads threadID without the TUI and prints the tree as JSON.
func runDump(ctx context.Context, cfg config.Config, tokens auth.TokenProvider, log *zap.Logger, threadID string, out io.Writer) error {
	deps := newServices(cfg, tokens, log)
	var warnings []string
	deps.Notifier = app.NotifierFunc(func(_ app.ToastKind, msg string) { warnings = append(warnings, msg) })

	ctrl := thread.NewController(threadID, deps)
	if ctrl.Load(ctx) != thread.StateLoaded {
		if len(warnings) > 0 {
			return fmt.Errorf("thread %s: %s", threadID, warnings[0])
		}
		return fmt.Errorf("thread %s: %w", threadID, domain.ErrNotFound)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return writeDump(ctrl.Tree(), out)
}

func writeDump(tree thread.View, out io.Writer) error {
	root, ok := tree.Root()
	if !ok {
		return fmt.Errorf("dump: %w", domain.ErrNotFound)
	}
	doc := toDump(root)
	for _, r := range tree.Replies() {
		reply := toDump(r)
		for _, n := range tree.Nested(r.ID) {
			reply.Replies = append(reply.Replies, toDump(n))
		}
		doc.Replies = append(doc.Replies, reply)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}
