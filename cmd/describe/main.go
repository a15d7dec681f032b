package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"listingcopy/internal/copywriter"
	"listingcopy/internal/domain"
	"listingcopy/internal/export"
	"listingcopy/internal/infra"
	"listingcopy/internal/infra/credentials"
	"listingcopy/internal/providers/gemini"
	"listingcopy/internal/storage"
)

// listingFile is the YAML document read by -file. Image paths are relative to
// the file itself.
type listingFile struct {
	domain.ListingFacts `yaml:",inline"`
	Tone                string   `yaml:"tone"`
	Length              string   `yaml:"length"`
	Images              []string `yaml:"images"`
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one describe invocation. Only the description goes to stdout;
// logs and errors go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		fileFlag    string
		toneFlag    string
		lengthFlag  string
		exportFlag  string
		keyFlag     string
		outFlag     string
		timeoutFlag time.Duration
	)
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&fileFlag, "file", "", "YAML listing file (facts, tone, length, images)")
	fs.StringVar(&toneFlag, "tone", "", "override tone: default, professional, friendly or luxury")
	fs.StringVar(&lengthFlag, "length", "", "override length: short, normal or long")
	fs.StringVar(&exportFlag, "export", "", "print formatted for a listing site (naver or zigbang)")
	fs.StringVar(&keyFlag, "key", "", "Gemini API key (fallbacks to GEMINI_API_KEY)")
	fs.StringVar(&outFlag, "out", "", "also write every export format and a zip bundle into this directory")
	fs.DurationVar(&timeoutFlag, "timeout", 2*time.Minute, "abort the generation after this long")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(fileFlag) == "" {
		fmt.Fprintln(stderr, "-file is required")
		return 2
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	listing, images, err := loadListing(fileFlag, cfg.MaxUploadImages)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if toneFlag != "" {
		listing.Tone = toneFlag
	}
	if lengthFlag != "" {
		listing.Length = lengthFlag
	}

	var target export.Target
	if exportFlag != "" {
		if target, err = export.ParseTarget(exportFlag); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 2
		}
	}

	var source gemini.CredentialSource = credentials.NewStore()
	if key := strings.TrimSpace(keyFlag); key != "" {
		source = credentials.Static(key)
	}

	logger := infra.NewLoggerTo("cli", stderr).With().Str("cmd", "describe").Logger()
	client, err := gemini.NewClient(gemini.Options{
		Credentials: source,
		BaseURL:     cfg.GeminiBaseURL,
		Model:       cfg.GeminiModel,
		Logger:      &logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	service := copywriter.NewService(client, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	description, err := service.Generate(ctx, copywriter.Input{
		Facts:  listing.ListingFacts,
		Tone:   domain.ParseTone(listing.Tone),
		Length: domain.ParseLength(listing.Length),
		Images: images,
	})
	if err != nil {
		result := domain.NewResult("", err, cfg.DefaultLocale)
		fmt.Fprintf(stderr, "%s (%v)\n", result.Message, err)
		return 1
	}

	if outFlag != "" {
		dir, err := storage.OpenDir(outFlag)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		stem := strings.TrimSuffix(filepath.Base(fileFlag), filepath.Ext(fileFlag))
		written, err := writeExports(ctx, dir, stem, description, time.Now())
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		logger.Info().Str("dir", dir.Root()).Strs("files", written).Msg("exports written")
	}

	if target != "" {
		description = export.Format(target, description)
	}
	fmt.Fprintln(stdout, description)
	return 0
}

// writeExports stores one file per export target under stem/ plus stem.zip.
func writeExports(ctx context.Context, dir *storage.Dir, stem, description string, now time.Time) ([]string, error) {
	var written []string
	for _, target := range export.Targets {
		path, err := dir.Write(ctx, stem+"/"+target.Filename(), []byte(export.Format(target, description)))
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	bundle, err := export.Bundle(description, now)
	if err != nil {
		return written, fmt.Errorf("build bundle: %w", err)
	}
	path, err := dir.Write(ctx, stem+".zip", bundle)
	if err != nil {
		return written, err
	}
	return append(written, path), nil
}

// loadListing parses the listing file and reads its images concurrently,
// keeping their listed order.
func loadListing(path string, maxImages int) (listingFile, []domain.ImageAttachment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return listingFile{}, nil, fmt.Errorf("read listing: %w", err)
	}
	var listing listingFile
	if err := yaml.Unmarshal(raw, &listing); err != nil {
		return listingFile{}, nil, fmt.Errorf("parse listing %s: %w", path, err)
	}
	if len(listing.Images) > maxImages {
		return listingFile{}, nil, fmt.Errorf("listing has %d images, at most %d are allowed", len(listing.Images), maxImages)
	}

	base := filepath.Dir(path)
	images := make([]domain.ImageAttachment, len(listing.Images))
	var group errgroup.Group
	for i, name := range listing.Images {
		i, name := i, name
		imgPath := name
		if !filepath.IsAbs(imgPath) {
			imgPath = filepath.Join(base, imgPath)
		}
		group.Go(func() error {
			img, err := readImage(imgPath)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return listingFile{}, nil, err
	}
	return listing, images, nil
}

// readImage loads one photo and sniffs its MIME type.
func readImage(path string) (domain.ImageAttachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ImageAttachment{}, fmt.Errorf("read image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ImageAttachment{}, fmt.Errorf("not an image (%s)", mimeType)
	}
	return domain.ImageAttachment{MIMEType: mimeType, Data: data}, nil
}
