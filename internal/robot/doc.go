// Package robot decodes the line-oriented "robot" output emitted by makemkvcon
// when run with -r/--robot.
//
// Each line has the form TAG:field0,field1,... and is decoded into one of the
// typed Record variants (Message, Progress, ProgressValue, Drive, TitleCount,
// Info). Aggregate folds the Info records into a disc → title → stream
// hierarchy of attribute collections. Attribute values are kept as the raw
// strings makemkvcon printed; interpreting durations, sizes or codecs is left
// to callers.
//
// Decoding never fails hard. Lines that cannot be decoded are reported through
// the Err* sentinels so callers can count or discard them.
package robot
