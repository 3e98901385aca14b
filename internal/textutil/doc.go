// Package textutil turns raw disc labels into display names and safe file
// names.
//
// Volume labels printed by makemkvcon are usually upper case with
// underscores (MY_MOVIE_DISC_1) or outright placeholders (DVD_VIDEO).
// HumanizeLabel and IsGenericLabel help pick something presentable;
// SanitizeFileName makes the result safe to use as a path segment.
package textutil
