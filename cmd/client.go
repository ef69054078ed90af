package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/muhammadheryan/mogadishu-rentals/client"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/backend"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"github.com/spf13/cobra"
)

type credentials struct {
	email    string
	password string
	// URL the browser landed on after Google sign in
	googleRedirect string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.email, "email", os.Getenv("RENTALS_EMAIL"), "Account email")
	cmd.Flags().StringVar(&c.password, "password", os.Getenv("RENTALS_PASSWORD"), "Account password")
	cmd.Flags().StringVar(&c.googleRedirect, "google-redirect", os.Getenv("RENTALS_GOOGLE_REDIRECT"), "Redirect URL returned by Google sign in")
}

// startController builds a controller against the configured backend and
// signs in when credentials are given. The returned func closes it.
func startController(ctx context.Context, creds credentials, opts ...client.Option) (*client.Controller, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	remote := backend.New(cfg.Backend, nil)
	ctrl := client.NewController(remote, opts...)
	closeFn := func() {
		ctrl.Close()
		_ = logger.Close()
	}

	if err := ctrl.Start(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	switch {
	case creds.googleRedirect != "":
		if err := ctrl.FinishGoogleSignIn(ctx, creds.googleRedirect); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("google sign in: %s", ctrl.AuthError())
		}
	case creds.email != "":
		if err := ctrl.SignIn(ctx, creds.email, creds.password); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("sign in: %s", ctrl.AuthError())
		}
	}

	return ctrl, closeFn, nil
}

func googleSignInCmd() *cobra.Command {
	var redirectTo string

	cmd := &cobra.Command{
		Use:   "google-signin",
		Short: "Print the Google sign in URL to open in a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeFn, err := startController(cmd.Context(), credentials{})
			if err != nil {
				return err
			}
			defer closeFn()

			url, err := ctrl.SignInWithGoogle(cmd.Context(), redirectTo)
			if err != nil {
				return fmt.Errorf("google sign in: %s", ctrl.AuthError())
			}
			fmt.Println(url)
			fmt.Println("Pass the URL you land on afterwards with --google-redirect.")
			return nil
		},
	}

	cmd.Flags().StringVar(&redirectTo, "redirect-to", "http://localhost:5173/", "Page to return to after sign in")
	return cmd
}

func browseCmd() *cobra.Command {
	var (
		creds    credentials
		filter   client.Filter
		price    string
		pages    int
		saved    bool
		mine     bool
		district bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List rentals from the feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if district {
				for _, d := range client.Districts() {
					fmt.Println(d)
				}
				return nil
			}

			var err error
			if filter.Price, err = client.ParsePriceRange(price); err != nil {
				return err
			}

			ctrl, closeFn, err := startController(cmd.Context(), creds)
			if err != nil {
				return err
			}
			defer closeFn()

			products := ctrl.Products()
			switch {
			case saved:
				products = ctrl.SavedProducts()
			case mine:
				products = ctrl.MyListings()
			}

			page, more := client.Paginate(filter.Apply(products), pages)
			printProducts(page)
			if more {
				fmt.Printf("\nMore results available, use --pages %d\n", pages+1)
			}
			return nil
		},
	}

	creds.bind(cmd)
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Search titles")
	cmd.Flags().StringVar(&filter.Category, "category", "All", "Property type")
	cmd.Flags().StringVar(&filter.Location, "location", "All", "District")
	cmd.Flags().StringVar(&price, "price", string(client.PriceAny), "Price range: all, under500, 500-1000, 1000-2000, over2000")
	cmd.Flags().IntVar(&pages, "pages", 1, "Pages of results to show")
	cmd.Flags().BoolVar(&saved, "saved", false, "Only saved rentals")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only my listings")
	cmd.Flags().BoolVar(&district, "districts", false, "Print the known districts and exit")
	return cmd
}

func saveCmd() *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "save <listing-id>",
		Short: "Save or unsave a rental",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeFn, err := startController(cmd.Context(), creds)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := ctrl.ToggleSave(cmd.Context(), args[0]); err != nil {
				return bannerError(ctrl, err)
			}
			if ctrl.IsSaved(args[0]) {
				fmt.Println("Saved", args[0])
			} else {
				fmt.Println("Removed", args[0])
			}
			return nil
		},
	}

	creds.bind(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "delete <listing-id>",
		Short: "Delete one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeFn, err := startController(cmd.Context(), creds)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := ctrl.DeleteListing(cmd.Context(), args[0]); err != nil {
				return bannerError(ctrl, err)
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}

	creds.bind(cmd)
	return cmd
}

func publishCmd() *cobra.Command {
	var (
		creds     credentials
		listing   client.NewListing
		bedrooms  int
		bathrooms int
		draft     bool
		photos    []string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "List a property for rent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("bedrooms") {
				listing.Bedrooms = &bedrooms
			}
			if cmd.Flags().Changed("bathrooms") {
				listing.Bathrooms = &bathrooms
			}
			if draft {
				visible := false
				listing.IsVisible = &visible
			}

			files, closeFiles, err := openPhotos(photos)
			if err != nil {
				return err
			}
			defer closeFiles()

			var opened string
			ctrl, closeFn, err := startController(cmd.Context(), creds,
				client.WithNavigator(client.NavigatorFunc(func(path string) { opened = path })))
			if err != nil {
				return err
			}
			defer closeFn()

			product, err := ctrl.CreateListing(cmd.Context(), listing, files)
			if err != nil {
				return bannerError(ctrl, err)
			}
			if msg := ctrl.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			fmt.Printf("Published %s (%s)\n", product.ID, opened)
			return nil
		},
	}

	creds.bind(cmd)
	cmd.Flags().StringVar(&listing.Title, "title", "", "Title")
	cmd.Flags().Float64Var(&listing.Price, "price", 0, "Monthly price in USD")
	cmd.Flags().StringVar(&listing.Category, "category", "", "Property type")
	cmd.Flags().StringVar(&listing.Description, "description", "", "Description")
	cmd.Flags().StringVar(&listing.Location, "location", "", "District")
	cmd.Flags().StringVar(&listing.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&listing.City, "city", "", "City")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 1, "Bedrooms")
	cmd.Flags().IntVar(&bathrooms, "bathrooms", 1, "Bathrooms")
	cmd.Flags().BoolVar(&draft, "draft", false, "Save without publishing")
	cmd.Flags().StringSliceVar(&photos, "photo", nil, "Photo file, repeatable")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

// bannerError prefers the controller's user facing message over err.
func bannerError(ctrl *client.Controller, err error) error {
	if msg := ctrl.Error(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return err
}

func openPhotos(paths []string) ([]client.PhotoFile, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]client.PhotoFile, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)

		info, err := f.Stat()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, client.PhotoFile{
			Name:        filepath.Base(p),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(p))),
			Size:        info.Size(),
			Data:        f,
		})
	}
	return files, closeAll, nil
}

func printProducts(products []client.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tLOCATION\tTYPE\tSAVED")
	for _, p := range products {
		saved := ""
		if p.Saved {
			saved = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t$%.0f\t%s\t%s\t%s\n", p.ID, p.Title, p.Price, client.NormalizeLocation(p.Location).Display, p.Category, saved)
	}
	_ = w.Flush()
}
