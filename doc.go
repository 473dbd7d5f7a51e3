// Package scientist creates experiments for safely comparing a trusted code path with new
// implementations in production.
//
// A Scientist carries configuration shared by all experiments, usually loaded from the
// environment:
//
//	s, err := scientist.FromEnvironment(scientist.WithContext(experiment.Context{"service": "billing"}))
//	if err != nil {
//		return err
//	}
//
//	exp := scientist.Science[int](s, "invoice-total")
//	exp.Use(func(ctx context.Context) (int, error) { return legacyTotal(ctx, invoice) })
//	exp.Try(func(ctx context.Context) (int, error) { return newTotal(ctx, invoice) })
//	exp.SetPublisher(publish.NewJSON[int](os.Stderr))
//
//	total, err := exp.Run(ctx)
//
// Run always returns what the control ("Use") behavior returned; the candidate's outcome is
// only reported to the publisher. See package experiment for the details of a run, and
// package publish for ready-made publishers.
//
// The environment variables read by LoadConfig are documented on Config.
package scientist
