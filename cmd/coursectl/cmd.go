package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"course-manager-client/internal/api"
	"course-manager-client/internal/auth"
	"course-manager-client/internal/gateway"
	"course-manager-client/internal/model"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	client *api.Client
	raw    api.Gateway
	out    io.Writer
	stdin  int
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                          - log in, the password is prompted")
	fmt.Fprintln(cli.out, "  register -firstname F -surname S -age N -email E [-organizer]")
	fmt.Fprintln(cli.out, "                                              - create an account and log into it")
	fmt.Fprintln(cli.out, "  logout                                      - forget the stored session")
	fmt.Fprintln(cli.out, "  whoami                                      - show the stored session")
	fmt.Fprintln(cli.out, "  events [-mine past|future|all] [-tag N] [-exclude-full]")
	fmt.Fprintln(cli.out, "                                              - list events")
	fmt.Fprintln(cli.out, "  enroll -event N                             - sign up for an event")
	fmt.Fprintln(cli.out, "  get|delete PATH                             - raw authenticated request")
	fmt.Fprintln(cli.out, "  post|put -data JSON PATH                    - raw authenticated request with a body")
}

// run dispatches args (program name first). An interrupt returns without
// waiting for the command. A 401 from the backend ends the stored session
// before the error is reported.
func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	pending := gateway.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, cli.dispatch(ctx, args[1], args[2:])
	})
	_, err := pending.Wait(ctx)
	if err == nil || errors.Is(err, errHelp) {
		return err
	}
	err = cli.client.HandleAuthError(err)
	if errors.Is(err, api.ErrSessionExpired) {
		fmt.Fprintln(cli.out, "Your session has expired. Run `coursectl login` again.")
	}
	return err
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "login":
		fs := cli.newFlagSet("login")
		email := fs.String("email", "", "The account e-mail. The password will be prompted next.")
		if err := fs.Parse(args); err != nil {
			return errHelp
		}
		if *email == "" {
			fs.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		sess, err := cli.client.Login(ctx, *email, pwd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Logged in as %s <%s>\n", sess.FullName(), sess.Email)
		return nil

	case "register":
		fs := cli.newFlagSet("register")
		req := model.RegisterRequest{}
		fs.StringVar(&req.Firstname, "firstname", "", "First name.")
		fs.StringVar(&req.Surname, "surname", "", "Surname.")
		fs.IntVar(&req.Age, "age", 0, "Age in years.")
		fs.StringVar(&req.Email, "email", "", "E-mail, used to log in. The password will be prompted next.")
		fs.BoolVar(&req.IsOrganizer, "organizer", false, "Register as an event organizer.")
		if err := fs.Parse(args); err != nil {
			return errHelp
		}
		if req.Firstname == "" || req.Surname == "" || req.Email == "" {
			fs.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		req.Password = pwd
		sess, err := cli.client.Register(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Registered and logged in as %s <%s>\n", sess.FullName(), sess.Email)
		return nil

	case "logout":
		cli.client.Logout()
		fmt.Fprintln(cli.out, "Logged out")
		return nil

	case "whoami":
		return cli.whoami()

	case "events":
		fs := cli.newFlagSet("events")
		mine := fs.String("mine", "", "Only events you take part in: past, future or all.")
		tag := fs.Int64("tag", 0, "Only upcoming events with this tag id.")
		excludeFull := fs.Bool("exclude-full", false, "Hide upcoming events that are full.")
		if err := fs.Parse(args); err != nil {
			return errHelp
		}
		events, err := cli.listEvents(ctx, *mine, model.EventFilter{TagID: *tag, ExcludeFull: *excludeFull})
		if err != nil {
			return err
		}
		return cli.printEvents(events)

	case "enroll":
		fs := cli.newFlagSet("enroll")
		eventID := fs.Int64("event", 0, "The event id.")
		if err := fs.Parse(args); err != nil {
			return errHelp
		}
		if *eventID <= 0 {
			fs.Usage()
			return errHelp
		}
		msg, err := cli.client.Enroll(ctx, *eventID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, msg)
		return nil

	case "get", "delete", "post", "put":
		return cli.rawRequest(ctx, name, args)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(cli.stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errors.New("empty password")
	}
	return string(pwd), nil
}

func (cli *commandLine) whoami() error {
	sess, err := cli.client.RequireSession()
	if err != nil {
		fmt.Fprintln(cli.out, "Not logged in")
		return nil
	}
	role := "participant"
	if sess.IsOrganizer {
		role = "organizer"
	}
	fmt.Fprintf(cli.out, "%s <%s> id=%d role=%s\n", sess.FullName(), sess.Email, sess.ID, role)
	if exp, ok := auth.ExpiresAt(sess.Token); ok {
		state := "valid"
		if time.Now().After(exp) {
			state = "expired"
		}
		fmt.Fprintf(cli.out, "token %s until %s\n", state, exp.Local().Format(time.RFC1123))
	}
	return nil
}

func (cli *commandLine) listEvents(ctx context.Context, mine string, f model.EventFilter) ([]model.Event, error) {
	switch mine {
	case "":
		if f == (model.EventFilter{}) {
			return cli.client.ListEvents(ctx)
		}
		return cli.client.FilterEvents(ctx, f)
	case "past":
		return cli.client.PastEvents(ctx)
	case "future":
		return cli.client.FutureEvents(ctx)
	case "all":
		sess, err := cli.client.RequireSession()
		if err != nil {
			return nil, err
		}
		return cli.client.ParticipatingEvents(ctx, sess.ID)
	default:
		return nil, fmt.Errorf("-mine must be past, future or all (got %q)", mine)
	}
}

func (cli *commandLine) printEvents(events []model.Event) error {
	if len(events) == 0 {
		fmt.Fprintln(cli.out, "No events")
		return nil
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tNAME\tORGANIZER\tCLASSROOM\tSEATS")
	for _, ev := range events {
		start := "-"
		if !ev.StartDatetime.IsZero() {
			start = ev.StartDatetime.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n", ev.ID, start, ev.Name, ev.OrganizerName, ev.ClassroomName, ev.MaxParticipants)
	}
	return w.Flush()
}

func (cli *commandLine) rawRequest(ctx context.Context, verb string, args []string) error {
	fs := cli.newFlagSet(verb)
	var data *string
	if verb == "post" || verb == "put" {
		data = fs.String("data", "", "JSON request body.")
	}
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	path := fs.Arg(0)
	if !strings.HasPrefix(path, "/") {
		fs.Usage()
		return errHelp
	}

	var body any
	if data != nil && *data != "" {
		if !json.Valid([]byte(*data)) {
			return errors.New("-data is not valid JSON")
		}
		body = json.RawMessage(*data)
	}

	var (
		status  int
		payload []byte
	)
	switch verb {
	case "get":
		resp, err := cli.raw.Get(ctx, path)
		if err != nil {
			return err
		}
		status, payload = resp.Status, resp.Body
	case "delete":
		resp, err := cli.raw.Delete(ctx, path)
		if err != nil {
			return err
		}
		status, payload = resp.Status, resp.Body
	case "post":
		resp, err := cli.raw.Post(ctx, path, body)
		if err != nil {
			return err
		}
		status, payload = resp.Status, resp.Body
	case "put":
		resp, err := cli.raw.Put(ctx, path, body)
		if err != nil {
			return err
		}
		status, payload = resp.Status, resp.Body
	}

	fmt.Fprintf(cli.out, "HTTP %d\n", status)
	return writeBody(cli.out, payload)
}

// writeBody pretty-prints JSON and copies anything else verbatim.
func writeBody(w io.Writer, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(payload, &v); err == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, strings.TrimSpace(string(payload)))
	return err
}

func stdinFD() int {
	return int(os.Stdin.Fd())
}
