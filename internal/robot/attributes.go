package robot

import "strconv"

// AttributeID is a makemkvcon item attribute identifier (apdefs.h
// AP_ItemAttributeId). The same numbering is shared by disc, title and stream
// attribute collections.
type AttributeID int

const (
	AttrUnknown AttributeID = iota
	AttrType
	AttrName
	AttrLangCode
	AttrLangName
	AttrCodecID
	AttrCodecShort
	AttrCodecLong
	AttrChapterCount
	AttrDuration
	AttrDiskSize
	AttrDiskSizeBytes
	AttrStreamTypeExtension
	AttrBitrate
	AttrAudioChannelsCount
	AttrAngleInfo
	AttrSourceFileName
	AttrAudioSampleRate
	AttrAudioSampleSize
	AttrVideoSize
	AttrVideoAspectRatio
	AttrVideoFrameRate
	AttrStreamFlags
	AttrDateTime
	AttrOriginalTitleID
	AttrSegmentsCount
	AttrSegmentsMap
	AttrOutputFileName
	AttrMetadataLanguageCode
	AttrMetadataLanguageName
	AttrTreeInfo
	AttrPanelTitle
	AttrVolumeName
	AttrOrderWeight
	AttrOutputFormat
	AttrOutputFormatDescription
	AttrSeamlessInfo
	AttrPanelText
	AttrMkvFlags
	AttrMkvFlagsText
	AttrAudioChannelLayoutName
	AttrOutputCodecShort
	AttrOutputConversionType
	AttrOutputAudioSampleRate
	AttrOutputAudioSampleSize
	AttrOutputAudioChannelsCount
	AttrOutputAudioChannelLayoutName
	AttrOutputAudioChannelLayout
	AttrOutputAudioMixDescription
	AttrComment
	AttrOffsetSequenceID
)

var attributeNames = [...]string{
	AttrUnknown:                      "unknown",
	AttrType:                         "type",
	AttrName:                         "name",
	AttrLangCode:                     "lang_code",
	AttrLangName:                     "lang_name",
	AttrCodecID:                      "codec_id",
	AttrCodecShort:                   "codec_short",
	AttrCodecLong:                    "codec_long",
	AttrChapterCount:                 "chapter_count",
	AttrDuration:                     "duration",
	AttrDiskSize:                     "disk_size",
	AttrDiskSizeBytes:                "disk_size_bytes",
	AttrStreamTypeExtension:          "stream_type_extension",
	AttrBitrate:                      "bitrate",
	AttrAudioChannelsCount:           "audio_channels_count",
	AttrAngleInfo:                    "angle_info",
	AttrSourceFileName:               "source_file_name",
	AttrAudioSampleRate:              "audio_sample_rate",
	AttrAudioSampleSize:              "audio_sample_size",
	AttrVideoSize:                    "video_size",
	AttrVideoAspectRatio:             "video_aspect_ratio",
	AttrVideoFrameRate:               "video_frame_rate",
	AttrStreamFlags:                  "stream_flags",
	AttrDateTime:                     "date_time",
	AttrOriginalTitleID:              "original_title_id",
	AttrSegmentsCount:                "segments_count",
	AttrSegmentsMap:                  "segments_map",
	AttrOutputFileName:               "output_file_name",
	AttrMetadataLanguageCode:         "metadata_language_code",
	AttrMetadataLanguageName:         "metadata_language_name",
	AttrTreeInfo:                     "tree_info",
	AttrPanelTitle:                   "panel_title",
	AttrVolumeName:                   "volume_name",
	AttrOrderWeight:                  "order_weight",
	AttrOutputFormat:                 "output_format",
	AttrOutputFormatDescription:      "output_format_description",
	AttrSeamlessInfo:                 "seamless_info",
	AttrPanelText:                    "panel_text",
	AttrMkvFlags:                     "mkv_flags",
	AttrMkvFlagsText:                 "mkv_flags_text",
	AttrAudioChannelLayoutName:       "audio_channel_layout_name",
	AttrOutputCodecShort:             "output_codec_short",
	AttrOutputConversionType:         "output_conversion_type",
	AttrOutputAudioSampleRate:        "output_audio_sample_rate",
	AttrOutputAudioSampleSize:        "output_audio_sample_size",
	AttrOutputAudioChannelsCount:     "output_audio_channels_count",
	AttrOutputAudioChannelLayoutName: "output_audio_channel_layout_name",
	AttrOutputAudioChannelLayout:     "output_audio_channel_layout",
	AttrOutputAudioMixDescription:    "output_audio_mix_description",
	AttrComment:                      "comment",
	AttrOffsetSequenceID:             "offset_sequence_id",
}

// String returns the snake_case attribute name, or "attr_N" for ids this
// package does not know.
func (id AttributeID) String() string {
	if id >= 0 && int(id) < len(attributeNames) {
		return attributeNames[id]
	}
	return "attr_" + strconv.Itoa(int(id))
}

// AttributeName is a convenience for AttributeID(id).String().
func AttributeName(id int) string {
	return AttributeID(id).String()
}

// Name returns the disc name (attribute 2).
func (d *DiscInfo) Name() string {
	if d == nil {
		return ""
	}
	return d.Attributes.Get(AttrName)
}

// VolumeName returns the volume label (attribute 32).
func (d *DiscInfo) VolumeName() string {
	if d == nil {
		return ""
	}
	return d.Attributes.Get(AttrVolumeName)
}

// Name returns the title name (attribute 2).
func (t Title) Name() string { return t.Attributes.Get(AttrName) }

// Duration returns the raw h:mm:ss duration string (attribute 9).
func (t Title) Duration() string { return t.Attributes.Get(AttrDuration) }

// SourceFileName returns the playlist or VOB set (attribute 16).
func (t Title) SourceFileName() string { return t.Attributes.Get(AttrSourceFileName) }

// Size returns the human readable disk size (attribute 10).
func (t Title) Size() string { return t.Attributes.Get(AttrDiskSize) }

// ChapterCount returns the raw chapter count string (attribute 8).
func (t Title) ChapterCount() string { return t.Attributes.Get(AttrChapterCount) }

// Type returns the stream type, e.g. "Video", "Audio" or "Subtitles" (attribute 1).
func (s Stream) Type() string { return s.Attributes.Get(AttrType) }

// Language returns the ISO 639-2 language code (attribute 3).
func (s Stream) Language() string { return s.Attributes.Get(AttrLangCode) }

// Codec returns the short codec name (attribute 6).
func (s Stream) Codec() string { return s.Attributes.Get(AttrCodecShort) }
