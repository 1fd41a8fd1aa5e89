package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-grpc/internal/rpc"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

var sampleStudents = []types.Student{
	{Name: "Alice Johnson", Email: "alice.johnson@university.edu", Age: 20, Major: "Computer Science", GPA: 3.8},
	{Name: "Bob Smith", Email: "bob.smith@university.edu", Age: 22, Major: "Mathematics", GPA: 3.6},
	{Name: "Carol Davis", Email: "carol.davis@university.edu", Age: 19, Major: "Physics", GPA: 3.9},
}

// newDemoCmd walks through every operation: create three students, list,
// get the first, update the second, list, delete the third, list.
func newDemoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walk-through of every operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *rpc.Client) error {
				return runDemo(ctx, c, cmd.OutOrStdout())
			})
		},
	}
}

func runDemo(ctx context.Context, c *rpc.Client, out io.Writer) error {
	fmt.Fprintln(out, "Creating sample students...")
	ids := make([]string, 0, len(sampleStudents))
	for _, s := range sampleStudents {
		created, err := c.CreateStudent(ctx, s)
		if err != nil {
			return fmt.Errorf("create %s: %w", s.Name, err)
		}
		fmt.Fprintf(out, "  created %s (id %s)\n", created.Name, created.ID)
		ids = append(ids, created.ID)
	}

	if err := demoList(ctx, c, out); err != nil {
		return err
	}

	student, err := c.GetStudent(ctx, ids[0])
	if err != nil {
		return fmt.Errorf("get %s: %w", ids[0], err)
	}
	fmt.Fprintf(out, "Fetched %s: %s, age %d, %s, GPA %.2f\n",
		student.Name, student.Email, student.Age, student.Major, student.GPA)

	current, err := c.GetStudent(ctx, ids[1])
	if err != nil {
		return fmt.Errorf("get %s: %w", ids[1], err)
	}
	current.Major = "Computer Engineering"
	current.GPA = 3.95
	updated, err := c.UpdateStudent(ctx, current)
	if err != nil {
		return fmt.Errorf("update %s: %w", ids[1], err)
	}
	fmt.Fprintf(out, "Updated %s: major %s, GPA %.2f\n", updated.Name, updated.Major, updated.GPA)

	if err := demoList(ctx, c, out); err != nil {
		return err
	}

	deleted, err := c.DeleteStudent(ctx, ids[2])
	if err != nil {
		return fmt.Errorf("delete %s: %w", ids[2], err)
	}
	fmt.Fprintf(out, "Delete: %s\n", deleted.Message)

	if err := demoList(ctx, c, out); err != nil {
		return err
	}

	fmt.Fprintln(out, "Demo completed.")
	return nil
}

func demoList(ctx context.Context, c *rpc.Client, out io.Writer) error {
	page, err := c.ListStudents(ctx, types.ListStudentsRequest{PageSize: 10})
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	fmt.Fprintf(out, "Listing %d of %d students:\n", len(page.Students), page.TotalCount)
	for i, s := range page.Students {
		fmt.Fprintf(out, "  %d. %s - %s (GPA %.2f)\n", i+1, s.Name, s.Major, s.GPA)
	}
	if page.NextPageToken != "" {
		fmt.Fprintf(out, "  (more available, next page token %s)\n", page.NextPageToken)
	}
	return nil
}
