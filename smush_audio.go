// smush_audio.go - Routing of IACT, PSAD and Wave sub-chunks to the audio sink

package main

import "errors"

const (
	iactHeaderSize   = 18
	iactAudioCode    = 8
	iactAudioFlags   = 46
	iactSkipTrack    = 1000
	psadOldHeaderLen = 12
	psadNewHeaderLen = 10
	saudFallbackRate = 22050
)

func (v *SmushVideo) handleIACT(size uint32) {
	if size < iactHeaderSize {
		v.logger.Debug("short IACT chunk", "size", size)
		return
	}
	code := int(v.r.U16LE())
	flags := int(v.r.U16LE())
	v.r.S16LE()
	trackFlags := int(v.r.U16LE())
	if code != iactAudioCode || flags != iactAudioFlags || trackFlags == iactSkipTrack {
		return
	}

	trackID := int(v.r.U16LE())
	index := int(v.r.U16LE())
	frameCount := int(v.r.U16LE())
	v.r.U32LE() // bytes left in the track
	data := v.r.Bytes(int(size) - iactHeaderSize)
	if v.r.Err() != nil {
		return
	}

	if trackFlags == 0 {
		v.iact.Append(data)
		return
	}

	id, ok := imuseTrackID(trackID, trackFlags)
	if !ok {
		v.logger.Debug("IACT track flags out of range", "flags", trackFlags)
		return
	}
	key := TrackKey{Kind: TAG_IMUS, ID: uint32(id), MaxFrames: uint32(frameCount)}
	ch := v.tracks.Append(key, index, data, func() streamFormat { return newIMuseFormat(v.logger) })
	if ch == nil {
		return
	}
	if vol, ok := imuseVolume(trackFlags); ok {
		ch.SetVolume(vol)
	}
}

// detectSoundHeader peeks at the first PSAD record to pick between the old
// BE header and the newer LE one. The answer holds for the whole file.
func (v *SmushVideo) detectSoundHeader() {
	if v.soundChecked {
		return
	}
	pos := v.r.Pos()
	v.r.U32BE()
	index := v.r.U32BE()
	v.r.SeekTo(pos)
	v.oldSoundHeader = index == 0
	v.soundChecked = true
}

func (v *SmushVideo) handleSoundFrame(size uint32) {
	v.detectSoundHeader()

	var track, index, maxFrames uint32
	var volume, pan int
	hasMix := false
	headerLen := psadNewHeaderLen
	if v.oldSoundHeader {
		headerLen = psadOldHeaderLen
		if size < psadOldHeaderLen {
			v.logger.Debug("short sound chunk", "size", size)
			return
		}
		track = v.r.U32BE()
		index = v.r.U32BE()
		maxFrames = v.r.U32BE()
	} else {
		if size < psadNewHeaderLen {
			v.logger.Debug("short sound chunk", "size", size)
			return
		}
		track = uint32(v.r.U16LE())
		index = uint32(v.r.U16LE())
		maxFrames = uint32(v.r.U16LE())
		v.r.U16LE() // flags
		volume = int(v.r.U8())
		pan = int(v.r.S8())
		hasMix = true
	}
	data := v.r.Bytes(int(size) - headerLen)
	if v.r.Err() != nil {
		return
	}

	rate := v.desc.AudioRate
	if rate == 0 {
		rate = saudFallbackRate
	}
	key := TrackKey{Kind: TAG_SAUD, ID: track, MaxFrames: maxFrames}
	ch := v.tracks.Append(key, int(index), data, func() streamFormat { return newSAUDFormat(rate) })
	if ch == nil || !hasMix {
		return
	}
	ch.SetVolume(min(volume*2, VolumeMax))
	ch.SetBalance(pan)
}

// handleVIMA decodes one SANM Wave chunk and queues the samples on the
// file's VIMA channel.
func (v *SmushVideo) handleVIMA(sub chunkHeader) {
	count := v.r.S32BE()
	if count < 0 {
		v.r.Skip(4)
		count = v.r.S32BE()
	}
	consumed := v.r.Pos() - sub.Start
	if v.r.Err() != nil || count <= 0 || consumed >= int64(sub.Size) {
		return
	}
	data := v.r.Bytes(int(int64(sub.Size) - consumed))

	samples, channels, err := DecodeVIMA(data, int(count))
	if err != nil {
		if !errors.Is(err, ErrTruncated) || len(samples) == 0 {
			v.logger.Warn("VIMA decode failed", "err", err)
			return
		}
		v.logger.Debug("VIMA stream ended early", "samples", count)
	}

	if !v.vimaOpen {
		rate := v.desc.AudioRate
		if rate == 0 {
			rate = saudFallbackRate
		}
		v.vimaHandle = v.audio.OpenChannel(rate, channels)
		v.vimaOpen = true
	}
	v.audio.Queue(v.vimaHandle, samples)
}
