package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"shortlink/internal/infra/auth"
)

// Supported subcommands:
// - generate: create an Ed25519 key pair for session tokens
// - inspect:  report what kind of key a PEM file holds

const (
	defaultPrivateName = "private.pem"
	defaultPublicName  = "public.pem"
)

func main() {
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	generateOut := generateCmd.String("out", "./keys", "Directory to write the key pair to")
	generateBucket := generateCmd.String("bucket", "", "Bucket URL to write to instead of -out (file:// or gs://)")
	generatePrivate := generateCmd.String("private", defaultPrivateName, "Object name of the private key")
	generatePublic := generateCmd.String("public", defaultPublicName, "Object name of the public key")

	inspectCmd := flag.NewFlagSet("inspect", flag.ExitOnError)
	inspectIn := inspectCmd.String("in", "", "PEM file to inspect")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var err error
	switch os.Args[1] {
	case "generate":
		if err = generateCmd.Parse(os.Args[2:]); err != nil {
			err = errors.Wrap(err, "failed to parse generate flags")

			break
		}
		err = runGenerate(ctx, *generateOut, *generateBucket, *generatePrivate, *generatePublic)
	case "inspect":
		if err = inspectCmd.Parse(os.Args[2:]); err != nil {
			err = errors.Wrap(err, "failed to parse inspect flags")

			break
		}
		err = runInspect(*inspectIn)
	default:
		printUsage()
		err = errors.New("unknown subcommand")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, outDir, bucketURL, privateName, publicName string) error {
	if bucketURL == "" {
		abs, err := filepath.Abs(outDir)
		if err != nil {
			return errors.Wrap(err, "resolve output directory")
		}
		if err := os.MkdirAll(abs, 0o700); err != nil {
			return errors.Wrap(err, "create output directory")
		}
		bucketURL = "file://" + filepath.ToSlash(abs)
	}

	keys, err := auth.GenerateKeyMaterial()
	if err != nil {
		return err
	}

	if err := auth.SaveKeyMaterial(ctx, bucketURL, privateName, publicName, keys); err != nil {
		return err
	}

	fmt.Printf("Wrote %s and %s to %s\n", privateName, publicName, bucketURL)
	fmt.Println("Point token.keyBucketUrl at this location to use them.")

	return nil
}

func runInspect(path string) error {
	if path == "" {
		return errors.New("-in flag is required for inspect command")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	kind, err := auth.DescribeKey(data)
	if err != nil {
		return errors.Wrapf(err, "inspect %s", path)
	}

	fmt.Printf("%s: %s\n", path, kind)

	return nil
}

func printUsage() {
	fmt.Println("Usage: keys <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  generate    Create an Ed25519 key pair for session tokens")
	fmt.Println("  inspect     Report the kind of key stored in a PEM file")
	fmt.Println("")
	fmt.Println("Use 'keys <command> -h' for more information about a command.")
}
