package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/aanand-mishra/students-grpc/internal/rpc"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

type options struct {
	addr    string
	timeout time.Duration
	codec   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "students-cli",
		Short:         "Command line client for the students gRPC service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.addr, "addr", "localhost:50051", "server address")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "per-request timeout")
	root.PersistentFlags().StringVar(&opts.codec, "codec", rpc.CodecProto, "message encoding: proto or json")

	root.AddCommand(
		newCreateCmd(opts),
		newGetCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newListCmd(opts),
		newDemoCmd(opts),
	)
	return root
}

// withClient dials the server, runs fn with a request-scoped context and
// turns gRPC statuses into plain errors.
func withClient(cmd *cobra.Command, opts *options, fn func(context.Context, *rpc.Client) error) error {
	switch opts.codec {
	case rpc.CodecProto, rpc.CodecJSON:
	default:
		return fmt.Errorf("unknown codec %q", opts.codec)
	}

	conn, err := rpc.Dial(opts.addr,
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(opts.codec)))
	if err != nil {
		return fmt.Errorf("dial %s: %w", opts.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	if err := fn(ctx, rpc.NewClient(conn)); err != nil {
		if st, ok := status.FromError(err); ok {
			return fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return err
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func addStudentFlags(cmd *cobra.Command, s *types.Student) {
	cmd.Flags().StringVar(&s.Name, "name", "", "student name")
	cmd.Flags().StringVar(&s.Email, "email", "", "student email")
	cmd.Flags().Int32Var(&s.Age, "age", 0, "student age")
	cmd.Flags().StringVar(&s.Major, "major", "", "student major")
	cmd.Flags().Float64Var(&s.GPA, "gpa", 0, "student GPA")
}

func newCreateCmd(opts *options) *cobra.Command {
	var student types.Student
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *rpc.Client) error {
				created, err := c.CreateStudent(ctx, student)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), created)
			})
		},
	}
	addStudentFlags(cmd, &student)
	return cmd
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Fetch a student by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *rpc.Client) error {
				student, err := c.GetStudent(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), student)
			})
		},
	}
}

// newUpdateCmd fetches the current record and overwrites only the fields
// whose flags were given, then sends the full record back.
func newUpdateCmd(opts *options) *cobra.Command {
	var patch types.Student
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update fields of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *rpc.Client) error {
				current, err := c.GetStudent(ctx, args[0])
				if err != nil {
					return err
				}

				flags := cmd.Flags()
				if flags.Changed("name") {
					current.Name = patch.Name
				}
				if flags.Changed("email") {
					current.Email = patch.Email
				}
				if flags.Changed("age") {
					current.Age = patch.Age
				}
				if flags.Changed("major") {
					current.Major = patch.Major
				}
				if flags.Changed("gpa") {
					current.GPA = patch.GPA
				}

				updated, err := c.UpdateStudent(ctx, current)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), updated)
			})
		},
	}
	addStudentFlags(cmd, &patch)
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a student by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *rpc.Client) error {
				resp, err := c.DeleteStudent(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var (
		req types.ListStudentsRequest
		all bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *rpc.Client) error {
				for {
					page, err := c.ListStudents(ctx, req)
					if err != nil {
						return err
					}
					if err := printJSON(cmd.OutOrStdout(), page); err != nil {
						return err
					}
					if !all || page.NextPageToken == "" {
						return nil
					}
					req.PageToken = page.NextPageToken
				}
			})
		},
	}
	cmd.Flags().Int32Var(&req.PageSize, "page-size", 0, "records per page (server default when 0)")
	cmd.Flags().StringVar(&req.PageToken, "page-token", "", "token from a previous page")
	cmd.Flags().BoolVar(&all, "all", false, "follow next_page_token until exhausted")
	return cmd
}
