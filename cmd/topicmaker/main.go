package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/niksmo/shop-fusion/config"
	"github.com/niksmo/shop-fusion/internal/adapter"
	"github.com/niksmo/shop-fusion/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	delete            = "delete"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	if !cfg.Broker.Enabled() {
		fmt.Println("seed brokers are not set, nothing to do")
		os.Exit(2)
	}

	t := cfg.Broker.TLS
	tlsCfg, err := adapter.MakeTLSConfig(t.CAFile, t.CertFile, t.KeyFile)
	if err != nil {
		printFail(err)
		os.Exit(1)
	}

	cl := createClient(cfg.Broker.SeedBrokers, tlsCfg)
	defer cl.Close()

	printStart(cfg)
	defer printComplete(time.Now())

	err = makeTopics(
		sigCtx, cl, delete,
		cfg.Broker.Topics.Orders,
		cfg.Broker.Topics.ClientEvents,
	)
	if err != nil {
		printFail(err)
		return
	}
}

func createClient(seedBrokers []string, tlsCfg *tls.Config) *kadm.Client {
	opts := []kgo.Opt{kgo.SeedBrokers(seedBrokers...)}
	if tlsCfg != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}

	cl, err := kadm.NewOptClient(opts...)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, cleanupPolicy string, topics ...string,
) error {
	var (
		minISR = "1"
	)

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		topics...,
	)

	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		err := res.Err
		if err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, err)
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(cfg config.Config) {
	fmt.Printf(`initializing topics...
	- %q
	- %q

`,
		cfg.Broker.Topics.Orders,
		cfg.Broker.Topics.ClientEvents,
	)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
