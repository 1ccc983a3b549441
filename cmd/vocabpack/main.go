// Command vocabpack converts a words.json vocabulary export into the msgpack
// snapshot the bot loads through VOCAB_FILE.
//
//	vocabpack -in words.json -out vocab.msgpack
//	vocabpack -in words.json -out vocab-tr.msgpack -lang tr
package main

import (
	"flag"
	"fmt"
	"os"

	"wordballs/internal/domain"
	"wordballs/internal/repository/file"

	"go.uber.org/zap"
)

func main() {
	in := flag.String("in", "words.json", "vocabulary export to read")
	out := flag.String("out", "vocab.msgpack", "snapshot to write")
	lang := flag.String("lang", "", "keep only this language")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := pack(*in, *out, *lang, logger); err != nil {
		logger.Fatal("Failed to pack vocabulary", zap.Error(err))
	}
}

func pack(in, out, lang string, logger *zap.Logger) error {
	repo, err := file.Open(in)
	if err != nil {
		return err
	}

	entries := repo.All()
	if lang != "" {
		if entries, err = repo.ListWords(lang); err != nil {
			return err
		}
	}

	kept := entries[:0:0]
	skipped := 0
	for _, e := range entries {
		if e.Text == "" || e.Language == "" {
			skipped++
			continue
		}
		kept = append(kept, e)
	}

	if err := file.Save(out, kept); err != nil {
		return err
	}

	languages, err := file.NewVocabularyRepo(kept).ListLanguages()
	if err != nil {
		return err
	}

	logger.Info("Vocabulary packed",
		zap.String("in", in),
		zap.String("out", out),
		zap.Int("words", len(kept)),
		zap.Int("skipped", skipped),
		zap.Strings("languages", languages),
		zap.String("default_category", domain.DefaultCategory),
	)
	return nil
}
