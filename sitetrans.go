// Package sitetrans translates a tree of static HTML documents from one
// language to another while preserving markup, node order, and site
// navigation metadata.
//
// The pipeline extracts the human-visible and SEO-relevant text of each
// document (inline text runs, a whitelist of attributes, meta descriptions),
// translates it through a batch translation service with caching, batching,
// rate limiting and retries, reinserts every translation at its exact
// original location, and cross-links the source and translated documents
// with hreflang metadata plus an in-page language switch.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/sitetrans"
//	    "github.com/ZaguanLabs/sitetrans/cache"
//	    "github.com/ZaguanLabs/sitetrans/provider"
//	    "github.com/ZaguanLabs/sitetrans/site"
//	)
//
//	func main() {
//	    p := provider.NewYandexProvider(provider.YandexConfig{
//	        APIKey:   os.Getenv("YANDEX_API_KEY"),
//	        FolderID: os.Getenv("YANDEX_FOLDER_ID"),
//	    })
//
//	    client := sitetrans.NewClient(p, sitetrans.ClientConfig{
//	        SourceLang: "ru",
//	        TargetLang: "uz",
//	    })
//
//	    store := cache.NewFileCache(".cache/ru_uz.json")
//	    store.Load()
//
//	    t := sitetrans.NewTranslator(client, sitetrans.WithCache(store))
//
//	    runner, err := site.NewRunner(site.Config{
//	        SourceRoot: "./public",
//	        OutputRoot: "./public/uz",
//	        SourceLang: "ru",
//	        TargetLang: "uz",
//	    }, t, site.WithCache(store))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    result, err := runner.Run(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("translated %d documents\n", result.Translated)
//	}
package sitetrans
