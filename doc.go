// Package semanticsim compares the meaning of short phrases using sentence
// embeddings from a pluggable inference provider.
//
// A Comparer embeds both phrases through its provider, scores them with
// cosine similarity and attaches a human-readable interpretation:
//
//	cmp, err := semanticsim.New(options.WithOllamaProvider(""))
//	if err != nil {
//		return err
//	}
//	defer cmp.Close()
//
//	if err := cmp.Initialize(ctx); err != nil {
//		return err
//	}
//	res, err := cmp.ComparePhrases(ctx, "I love programming", "I enjoy writing code")
//
// The package also offers zero-shot sentiment classification and text
// continuation on top of any types.Generator.
package semanticsim
