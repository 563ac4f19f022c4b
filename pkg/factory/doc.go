/*
Package factory is the construction point for configured HL7 messages.

A Factory holds one delimiter configuration, starting from the HL7
defaults (`|^~\&`, CR between segments, `""` as the null token, version
2.2). Setters change it in place; every CreateMessage and CreateMSH call
copies the configuration at that moment, so later changes never reach
objects already built.

The six delimiter setters accept exactly one byte and report rejection
with false, leaving the configuration as it was:

	f := factory.New()
	f.SetFieldSeparator("#")  // true
	f.SetFieldSeparator("##") // false, still '#'
	msh := f.CreateMSH()      // MSH#^~\&#...

Update is the same operation with an error result for callers that want
to know why a value was refused.

ParseMessage and ParseBatch add context cancellation, OpenTelemetry spans
and Prometheus metrics on top of CreateMessage.
*/
package factory
