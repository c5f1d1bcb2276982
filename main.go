package main

import "github.com/thereayou/socialite/cmd/server"

func main() {
	server.NewServer().Run()
}
