// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the config file and session database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and session database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the session lifecycle
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Session operations",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate and store the session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account e-mail",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show the stored session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "create-user",
				Usage: "Register a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account e-mail",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "confirm-password",
						Usage:    "Repeat the password",
						Required: true,
					},
				},
				Action: r.AuthCreateUser,
			},
		},
	}
}

// musicsCommand handles catalog operations
func musicsCommand(r *Runner) *cli.Command {
	recordFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "title",
			Usage: "Music title",
		},
		&cli.StringFlag{
			Name:  "artist",
			Usage: "Artist name",
		},
		&cli.StringFlag{
			Name:  "launch-date",
			Usage: "Launch date as dd/mm/yyyy",
		},
		&cli.StringFlag{
			Name:  "duration",
			Usage: "Duration as mm:ss",
		},
		&cli.IntFlag{
			Name:  "views",
			Usage: "Views number",
		},
		&cli.BoolFlag{
			Name:  "feat",
			Usage: "Mark the music as featured",
		},
	}

	return &cli.Command{
		Name:  "musics",
		Usage: "Catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List one page of the catalog",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Usage: "Zero-based page index",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MusicsList,
			},
			{
				Name:   "add",
				Usage:  "Add a music to the catalog",
				Flags:  recordFlags,
				Action: r.MusicsAdd,
			},
			{
				Name:  "edit",
				Usage: "Edit an existing music",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Music ID",
						Required: true,
					},
				}, recordFlags...),
				Action: r.MusicsEdit,
			},
			{
				Name:  "delete",
				Usage: "Soft-delete a music",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Music ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.MusicsDelete,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.MusicsExport,
			},
			{
				Name:  "deleted",
				Usage: "Deleted music operations",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List one page of deleted musics",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "page",
								Usage: "Zero-based page index",
							},
							&cli.BoolFlag{
								Name:  "json",
								Usage: "Output raw JSON",
							},
							&cli.BoolFlag{
								Name:  "pretty",
								Usage: "Pretty-print output",
							},
						},
						Action: r.MusicsDeletedList,
					},
					{
						Name:   "count",
						Usage:  "Count deleted musics",
						Action: r.MusicsDeletedCount,
					},
					{
						Name:  "recover",
						Usage: "Recover deleted musics by ID",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "ids",
								Usage:    "Comma-separated music IDs to recover",
								Required: true,
							},
							&cli.BoolFlag{
								Name:    "yes",
								Aliases: []string{"y"},
								Usage:   "Skip the confirmation prompt",
							},
						},
						Action: r.MusicsRecover,
					},
				},
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}
