// Package dstream contains a minimal push-based event stream primitive.
//
// A [Source] describes how to produce a sequence of values over time.
// It holds no runtime state: every call to [*Source.Subscribe]
// creates a fresh [Sink] and runs the source's [Producer] once more,
// so two subscriptions never share an execution.
//
// The producer drives the sink with [*Sink.Next], [*Sink.Error]
// and [*Sink.Complete], and it may return a cleanup function.
// After Error or Complete, the sink drops any further signal
// and runs the cleanup exactly once.
// Consumers may also end a subscription early with [Subscription.Unsubscribe].
//
// A panic raised synchronously by the producer during Subscribe
// is recovered and delivered to the observer's Error handler,
// so consumers only ever observe failures through their [Observer].
//
// Deferred emission is the producer's business.
// The [Scheduler] interface is only a convenience for producers
// such as [Timer] and [Interval]; the core does not depend on it.
package dstream
