package main

import (
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-normal-raytracer/web/server"
)

func main() {
	app := cli.NewApp()
	app.Name = "raytracer-web"
	app.Usage = "serve rendered images and pixel inspection over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port",
			Value: 8080,
			Usage: "port to serve on",
		},
	}
	app.Action = func(c *cli.Context) error {
		port := c.Int("port")
		webServer := server.NewServer(port)

		log.Printf("Raytracer Web Server")
		log.Printf("Visit http://localhost:%d/api/render to render", port)

		return webServer.Start()
	}

	if err := app.Run(os.Args); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
