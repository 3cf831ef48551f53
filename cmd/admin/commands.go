package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/01moynul/marketpro-admin/internal/client"
	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username-or-email>",
		Short: "Log in and keep the token for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}
			if err := a.auth.Login(ctxOf(cmd), args[0], password); err != nil {
				return apiMessage(err)
			}
			fmt.Fprintf(a.out, "Logged in as %s\n", a.auth.User().Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.auth.Logout()
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var password, email string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.client.Register(ctxOf(cmd), args[0], password, email)
			if err != nil {
				return apiMessage(err)
			}
			return a.print(u)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.client.Me(ctxOf(cmd))
			if err != nil {
				return apiMessage(err)
			}
			return a.print(u)
		},
	}
}

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Browse and edit the catalog"}

	var filter models.ProductFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ps, err := a.client.ListProducts(ctxOf(cmd), filter)
			if err != nil {
				return apiMessage(err)
			}
			return a.print(ps)
		},
	}
	list.Flags().StringVarP(&filter.Query, "query", "q", "", "match name or description")
	list.Flags().StringVar(&filter.CategorySlug, "category", "", "only this category")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			p, err := a.client.GetProduct(ctxOf(cmd), id)
			if err != nil {
				return apiMessage(err)
			}
			return a.print(p)
		},
	}

	var fields client.ProductFields
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := client.NewProductForm(0, fields).Submit(ctxOf(cmd), a.client)
			if err != nil {
				return apiMessage(err)
			}
			return a.print(p)
		},
	}
	productFlags(create, &fields)

	var updFields client.ProductFields
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			// Start from the stored product so only the given flags change.
			current, err := a.client.GetProduct(ctxOf(cmd), id)
			if err != nil {
				return apiMessage(err)
			}
			merged := client.FieldsFromProduct(current)
			overlay(&merged, updFields)

			p, err := client.NewProductForm(id, merged).Submit(ctxOf(cmd), a.client)
			if err != nil {
				return apiMessage(err)
			}
			return a.print(p)
		},
	}
	productFlags(update, &updFields)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			msg, err := a.client.DeleteProduct(ctxOf(cmd), id)
			if err != nil {
				return apiMessage(err)
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}

	upload := &cobra.Command{
		Use:   "upload-image <file>",
		Short: "Upload a product image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			url, err := a.client.UploadImage(ctxOf(cmd), args[0], f)
			if err != nil {
				return apiMessage(err)
			}
			fmt.Fprintln(a.out, url)
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del, upload)
	return cmd
}

func productFlags(cmd *cobra.Command, f *client.ProductFields) {
	cmd.Flags().StringVar(&f.Name, "name", "", "product name")
	cmd.Flags().StringVar(&f.Price, "price", "", "price, e.g. 19.99")
	cmd.Flags().StringVar(&f.Category, "category", "", "category name")
	cmd.Flags().StringVar(&f.Image, "image", "", "image URL or path")
	cmd.Flags().StringVar(&f.Description, "description", "", "description")
	cmd.Flags().StringVar(&f.Stock, "stock", "", "units in stock")
}

func overlay(dst *client.ProductFields, src client.ProductFields) {
	for _, p := range []struct{ dst *string; src string }{
		{&dst.Name, src.Name},
		{&dst.Price, src.Price},
		{&dst.Category, src.Category},
		{&dst.Image, src.Image},
		{&dst.Description, src.Description},
		{&dst.Stock, src.Stock},
	} {
		if p.src != "" {
			*p.dst = p.src
		}
	}
}

func (a *app) cartCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cart", Short: "Work with the cart"}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the cart with current product details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines, err := a.client.ListCart(ctxOf(cmd))
			if err != nil {
				return apiMessage(err)
			}
			return a.print(lines)
		},
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show cart totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.client.CartSummary(ctxOf(cmd))
			if err != nil {
				return apiMessage(err)
			}
			return a.print(s)
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Put a product in the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			it, err := a.client.AddToCart(ctxOf(cmd), id, quantity)
			if err != nil {
				return apiMessage(err)
			}
			return a.print(it)
		},
	}
	add.Flags().IntVar(&quantity, "quantity", 0, "how many (server default 1)")

	remove := &cobra.Command{
		Use:   "remove <cart-item-id>",
		Short: "Take a row out of the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			msg, err := a.client.RemoveFromCart(ctxOf(cmd), id)
			if err != nil {
				return apiMessage(err)
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}

	cmd.AddCommand(list, summary, add, remove)
	return cmd
}

func (a *app) emailCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "email", Short: "Send mail and read the audit log"}

	var to, subject, body string
	send := &cobra.Command{
		Use:   "send",
		Short: "Send an email (to yourself when --to is omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if to == "" {
				err = a.client.SendEmailToSelf(ctxOf(cmd), subject, body)
			} else {
				err = a.client.SendEmail(ctxOf(cmd), to, subject, body)
			}
			if err != nil {
				return apiMessage(err)
			}
			fmt.Fprintln(a.out, "Email sent")
			return nil
		},
	}
	send.Flags().StringVar(&to, "to", "", "recipient")
	send.Flags().StringVar(&subject, "subject", "", "subject")
	send.Flags().StringVar(&body, "body", "", "body")
	_ = send.MarkFlagRequired("subject")
	_ = send.MarkFlagRequired("body")

	var limit int
	sent := &cobra.Command{
		Use:   "sent",
		Short: "List sent emails, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			emails, err := a.client.SentEmails(ctxOf(cmd), limit)
			if err != nil {
				return apiMessage(err)
			}
			return a.print(emails)
		},
	}
	sent.Flags().IntVar(&limit, "limit", 50, "how many")

	cmd.AddCommand(send, sent)
	return cmd
}
