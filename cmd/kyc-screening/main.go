package main

import "kyc-screening/internal/cli"

func main() { cli.Execute() }
