// Package dpubsub bridges dstream sources and in-application
// publish-subscribe streams.
//
// The [Stream] type is a single-writer, many-reader linked list of values.
// A [Publisher] records one subscription's signals onto a Stream,
// and [FromStream] turns a Stream back into a [dstream.Source]
// whose subscriptions each read the list at their own pace.
package dpubsub
