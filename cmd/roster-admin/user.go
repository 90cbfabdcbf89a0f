package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/view"
	"github.com/prn-tf/roster/pkg/client"
)

var (
	listQuery    string
	listPage     int
	listPageSize int

	createName     string
	createUsername string
	createEmail    string

	updateName     string
	updateUsername string
	updateEmail    string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user records",
	Long: `Manage user records on the Roster server.

Examples:
  roster-admin user list
  roster-admin user list --query ada --page 2
  roster-admin user create --name "Ada Lovelace" --username ada --email ada@example.com
  roster-admin user update 4f7c... --email ada@lovelace.dev
  roster-admin user delete 4f7c...`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, with optional search and paging",
	RunE:  runUserList,
}

var userGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserGet,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE:  runUserCreate,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a user",
	RunE:  runUserUpdate,
	Args:  cobra.ExactArgs(1),
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

func init() {
	userListCmd.Flags().StringVar(&listQuery, "query", "", "filter by name, username, or email substring")
	userListCmd.Flags().IntVar(&listPage, "page", 1, "page to show")
	userListCmd.Flags().IntVar(&listPageSize, "page-size", view.DefaultPageSize, "users per page")

	userCreateCmd.Flags().StringVar(&createName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&createUsername, "username", "", "username")
	userCreateCmd.Flags().StringVar(&createEmail, "email", "", "email address")

	userUpdateCmd.Flags().StringVar(&updateName, "name", "", "new display name")
	userUpdateCmd.Flags().StringVar(&updateUsername, "username", "", "new username")
	userUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "new email address")

	userCmd.AddCommand(userListCmd, userGetCmd, userCreateCmd, userUpdateCmd, userDeleteCmd)
}

func api() *client.Client {
	return client.New(serverURL)
}

func runUserList(cmd *cobra.Command, args []string) error {
	users, err := api().List(cmd.Context())
	if err != nil {
		return err
	}

	state := view.ListState{
		Page:     listPage,
		PageSize: listPageSize,
		MinQuery: view.MinQueryLength,
	}
	state.Query = listQuery

	if n := state.Remaining(); n > 0 {
		fmt.Fprintf(os.Stderr, "query too short, showing all users (%d more characters needed)\n", n)
	}

	filtered := state.Filter(toDomain(users))
	page := state.Paginate(filtered)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUSERNAME\tEMAIL")
	for _, u := range page {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Username, u.Email)
	}
	w.Flush()

	fmt.Printf("page %d of %d (%d of %d users)\n",
		state.Page, state.TotalPages(len(filtered)), len(filtered), len(users))
	return nil
}

func runUserGet(cmd *cobra.Command, args []string) error {
	user, err := api().Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("ID:       %s\n", user.ID)
	fmt.Printf("Name:     %s\n", user.Name)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email:    %s\n", user.Email)
	return nil
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	fields := domain.UserFields{
		Name:     createName,
		Username: createUsername,
		Email:    createEmail,
	}

	// Validate against the current collection before submitting, the
	// same way the dashboard form does.
	users, err := api().List(cmd.Context())
	if err != nil {
		return err
	}
	if errs := view.Validate(fields, toDomain(users), ""); !errs.Valid() {
		return validationError(errs)
	}
	fields = view.Sanitize(fields)

	created, err := api().Create(cmd.Context(), client.UserFields{
		Name:     fields.Name,
		Username: fields.Username,
		Email:    fields.Email,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created user %s\n", created.ID)
	return nil
}

func runUserUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	current, err := api().Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	// Merge the requested changes onto the current record and validate
	// the result, excluding the record itself from the uniqueness scan.
	merged := domain.UserFields{
		Name:     current.Name,
		Username: current.Username,
		Email:    current.Email,
	}
	if cmd.Flags().Changed("name") {
		merged.Name = updateName
	}
	if cmd.Flags().Changed("username") {
		merged.Username = updateUsername
	}
	if cmd.Flags().Changed("email") {
		merged.Email = updateEmail
	}

	users, err := api().List(cmd.Context())
	if err != nil {
		return err
	}
	if errs := view.Validate(merged, toDomain(users), id); !errs.Valid() {
		return validationError(errs)
	}
	merged = view.Sanitize(merged)

	var patch client.UserPatch
	if cmd.Flags().Changed("name") {
		patch.Name = &merged.Name
	}
	if cmd.Flags().Changed("username") {
		patch.Username = &merged.Username
	}
	if cmd.Flags().Changed("email") {
		patch.Email = &merged.Email
	}

	updated, err := api().Update(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated user %s\n", updated.ID)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	if err := api().Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted user %s\n", args[0])
	return nil
}

// toDomain converts wire users to domain users for the view helpers.
func toDomain(users []client.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = domain.User{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
	}
	return out
}

// validationError flattens field errors into one CLI error.
func validationError(errs view.FieldErrors) error {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msg := "validation failed:"
	for _, f := range fields {
		msg += fmt.Sprintf("\n  %s: %s", f, errs[f])
	}
	return fmt.Errorf("%s", msg)
}
