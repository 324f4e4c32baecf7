// Package kafka bridges Kafka topics and reactive streams.
//
// Source turns a topic into an Observable of Message values: a reader
// worker starts on subscribe, every consumed record is delivered as a
// next event, and a read failure becomes the stream's error terminal.
// Unsubscribing stops the worker and closes the reader.
//
// Sink is an actor that publishes every next event to a topic, so any
// observable can be drained into Kafka:
//
//	sink, err := kafka.NewSink(kafka.Config{Topic: "events"}, log)
//	if err != nil {
//		return err
//	}
//	rx.Subscribe(source, sink)
package kafka
