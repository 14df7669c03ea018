//go:build ignore

// generate.go regenerates the ContentService stubs.
// Run from the repository root with: go run proto/alterego/v1/generate.go
package main

import (
	"fmt"
	"os"
	"os/exec"
)

func main() {
	if _, err := exec.LookPath("protoc-gen-go-grpc"); err != nil {
		fmt.Println("Installing protoc-gen-go-grpc...")
		cmd := exec.Command("go", "install", "google.golang.org/grpc/cmd/protoc-gen-go-grpc@v1.5.1")
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to install protoc-gen-go-grpc: %v\n", err)
			os.Exit(1)
		}
	}

	// The service only carries google.protobuf.Struct, so the grpc plugin
	// output is the whole package.
	cmd := exec.Command("protoc",
		"--go-grpc_out=.", "--go-grpc_opt=paths=source_relative",
		"proto/alterego/v1/content.proto")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Code generation complete!")
}
