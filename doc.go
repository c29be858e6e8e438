/*
Package dawg compiles a sorted word list into a Directed Acyclic Word Graph
stored as a flat array of 32-bit edge records.

Words are read once, in strictly increasing byte order. A recursive builder
follows the common prefixes of consecutive words to assemble the nodes of
a trie from the leaves up, and each finished node is looked up in a
hash-consing table so that identical sub-trees are stored only once. The
result is a graph in which words with a common suffix share the edges for
that suffix.

In general, to use it you create a WordStream over the input text, or any
other WordSource, and pass it to Compile together with a Config. The
returned Dawg can be written with Save or WriteTo. The format of the edge
records is described at the top of bits.go, the file layout at the top of
disk.go.

A compiled file can be opened again with Load or Read, which give a Graph
that can enumerate its words or dump its records. This is meant for
checking the output; fast lookups are left to the programs that use the
files.
*/
package dawg
